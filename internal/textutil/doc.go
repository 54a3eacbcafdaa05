// Package textutil provides the text processing helpers shared by the
// naming and metadata code.
//
// The primary use cases are sanitizing artist/album/title strings for safe
// filesystem use and normalizing the shouting-case entries some CDDB
// mirrors return.
package textutil
