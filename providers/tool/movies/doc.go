// Package movies provides the recommend_movie tool, which returns the best
// rated movies of a genre. Genres accept informal names such as "sci-fi",
// "rom-com" or "scary".
package movies
