// Package audio reads song metadata from audio files and writes lyrics
// back into them.
//
// # Reading Tags
//
// ReadSong returns the artist, title, album and length stored in an MP3's
// ID3 tag, falling back to the "Artist - Title.ext" file name:
//
//	song, err := audio.ReadSong("/music/01 Daft Punk - One More Time.flac")
//	if errors.Is(err, audio.ErrNoTags) {
//	    // skip
//	}
//
// # Directory Scanning
//
// Scan lists every supported audio file below a directory:
//
//	files, err := audio.Scan(ctx, "/music")
//
// # Embedding Lyrics
//
// Tagger writes a document as an unsynchronised lyrics (USLT) frame:
//
//	tagger := audio.NewTagger("eng")
//	err := tagger.EmbedLyrics("/music/song.mp3", doc)
package audio
