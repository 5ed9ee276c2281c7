package alloc_test

import (
	"errors"
	"fmt"

	"github.com/joshuapare/allockit/alloc"
)

func ExampleArena() {
	arena, err := alloc.NewArena(64, nil)
	if err != nil {
		panic(err)
	}
	defer arena.Release()

	for i := range 3 {
		b, err := arena.Allocate(8)
		if errors.Is(err, alloc.ErrNoSpace) {
			fmt.Printf("allocation %d: exhausted\n", i)
			continue
		}
		fmt.Printf("allocation %d: offset %d\n", i, arena.Offset(b))
	}
	// Output:
	// allocation 0: offset 24
	// allocation 1: offset 56
	// allocation 2: exhausted
}

func ExampleFallback() {
	arena, err := alloc.NewArena(64, nil)
	if err != nil {
		panic(err)
	}
	fb := alloc.NewFallback(arena, alloc.DefaultHeap, nil)

	small, _ := fb.Allocate(8)
	large, _ := fb.Allocate(128)

	for _, b := range [][]byte{small, large} {
		src, _ := fb.Owner(b)
		fmt.Printf("%d bytes from %s\n", len(b), src)
	}
	_ = fb.Deallocate(large)
	fmt.Println("outstanding:", fb.Outstanding())
	// Output:
	// 8 bytes from primary
	// 128 bytes from secondary
	// outstanding: 1
}

func ExampleRebind() {
	arena, err := alloc.NewArena(256, nil)
	if err != nil {
		panic(err)
	}

	type point struct{ X, Y float64 }
	points := alloc.MustFor[point](arena)
	ids, _ := alloc.Rebind[uint32](points)

	ps, _ := points.Allocate(4)
	is, _ := ids.Allocate(4)
	fmt.Println(len(ps), len(is), arena.Stats().Allocs)
	// Output:
	// 4 4 2
}
