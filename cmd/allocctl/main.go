// Command allocctl drives the allockit allocators from the command line:
// it replays allocation traces against an arena, optionally behind a heap
// fallback, and prints the resulting placement and free list.
package main

func main() {
	execute()
}
