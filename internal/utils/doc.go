// Package utils holds small helpers shared by the command line and HTTP
// layers.
package utils
