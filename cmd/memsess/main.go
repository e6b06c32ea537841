/*
Memsess inspects and manipulates sessions kept in memcached (or Redis),
and serves a small session demo application.

Usage:

	memsess [--config file] [--hosts host:port,...] [--prefix prefix] [--redis addr] <command>

Commands are get, set, destroy, length, clear and serve.
*/
package main

func main() {
	Execute()
}
