// Package pages reserves page-backed byte buffers for arenas.
//
// On unix systems a reservation is a private anonymous mapping obtained from
// the kernel, so an arena's storage lives outside the Go heap and is returned
// to the operating system as soon as it is released. Elsewhere the buffer
// comes from the Go heap and release only drops the reference.
package pages
