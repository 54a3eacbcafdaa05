// Package gnudb implements the secondary metadata lookup source against a
// gnudb/freedb mirror speaking the CDDB protocol over HTTP.
package gnudb
