// Package ioutils provides file system utilities for rmxlrc.
//
// This package contains functions for:
//   - Filename sanitization for cross-platform compatibility
//   - Writing lyric files without leaving partial output behind
//   - Directory creation
//
// # File Operations
//
//	// Write a rendered lyric file, creating parent directories
//	err := ioutils.WriteFile(ctx, "/lyrics/Artist - Title.lrc", []byte(text))
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove invalid characters from filenames:
//
//	safe := ioutils.SanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
package ioutils
