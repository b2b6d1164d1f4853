// Package model defines the value types shared by every stage of the
// rmxlrc lyrics pipeline.
//
// # Song
//
// Song is the lookup key for a lyrics request. NewSong trims whitespace so
// that the same song typed by hand and read from tags compares equal:
//
//	song := model.NewSong("Artist", "Title", "Album", 215000)
//	fmt.Println(song.Key())
//
// # LyricDocument
//
// LyricDocument is what the response normalizer produces and the subtitle
// renderer consumes. An empty document means "not found"; an instrumental
// document holds exactly one InstrumentalText line.
//
// # Output
//
// Format selects LRC or SRT output. DefaultFileName builds the conventional
// "{artist} - {title}.lrc" name with filesystem-illegal characters replaced:
//
//	target := model.NewOutputTarget(song, model.FormatLRC, "/lyrics", "")
//	fmt.Println(target.Path) // "/lyrics/Artist - Title.lrc"
package model
