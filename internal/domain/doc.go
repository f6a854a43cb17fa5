// Package domain holds the wallpaper calculator's core value types: rooms,
// openings (windows and doors), and waste policies. All measurements are in
// meters. Types validate themselves at construction and mutation time and
// report violations as typed validation errors.
package domain
