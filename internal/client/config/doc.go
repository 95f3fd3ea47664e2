// Package config loads runtime configuration for the Evento CLI.
//
// Settings are layered, later layers winning: built-in defaults, then an
// optional JSON file, then command-line flags. The JSON file is named by
// -c/-config or, failing that, by EVENTO_CLI_CONFIG. Only keys present in
// the file override the defaults:
//
//	{
//	  "server_url": "http://127.0.0.1:8000",
//	  "grpc_addr": "127.0.0.1:50051",
//	  "session_dir": ".evento",
//	  "request_timeout": "10s"
//	}
//
// Flags:
//
//	-a  base URL of the REST API
//	-g  host:port of the gRPC endpoint
//	-s  directory holding the saved session
//	-t  request timeout in seconds
package config
