// Package batchfile parses batch descriptors: plain text files listing the
// songs to fetch plus optional settings.
//
//	# road trip mix
//	!format=lrc
//	!pace=10
//	!output=/home/me/lyrics
//	Daft Punk | One More Time
//	Adele | Hello | 25
//
// Recognized settings are format, pace (alias sleep), output (alias
// outdir), token, synced and concurrency. Parse errors carry the line
// number.
package batchfile
