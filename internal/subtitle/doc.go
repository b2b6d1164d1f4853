// Package subtitle renders lyric documents as LRC or SRT text.
//
// Supported formats:
//   - LRC, "[mm:ss.cc]text" per line when synced, bare text otherwise
//   - SRT, numbered blocks with "HH:MM:SS,mmm --> HH:MM:SS,mmm" ranges
//
// Rendering does no I/O. Write the result with ioutils.WriteFile.
package subtitle
