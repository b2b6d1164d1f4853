// Package cli implements the rmxlrc command line.
//
// # Commands
//
//	rmxlrc get -a ARTIST -t TITLE [--album A] [--duration SEC] [-o FILE]
//	rmxlrc batch FILE
//	rmxlrc dir DIR [--interval SEC] [--embed]
//	rmxlrc token [--save]
//
// Every command reads the TOML config file named by --config (default
// $XDG_CONFIG_HOME/rmxlrc/config.toml). Command flags and batch file
// settings override it for the current run only.
//
// # Caching
//
// When redis.addr is set, looked-up documents are cached in Redis; when
// cache_dir is set they are cached as files. An unreachable cache is logged
// and the run continues uncached.
package cli
