// Package hypercube simulates a 2x2x2x2 twisty puzzle: sixteen pieces in
// two hyper-layers, each piece carrying four coloured facelets.
//
// # Features
//
//   - Slice turns of either hyper-layer, full-depth slices, whole-puzzle
//     rotations and paired W rotations
//   - The gyro move that cycles pieces through both hyper-layers
//   - Random scrambles with no two consecutive moves on one axis
//   - A discrete facelet snapshot after every move
//
// # Quick Start
//
//	p, err := hypercube.NewPuzzle(hypercube.WithSeed(1))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p.OnMove(func(r turn.Record) {
//	    fmt.Println("Move:", r.Notation())
//	})
//
//	// Apply moves from notation
//	if err := p.ApplyNotation("AU KF' G wR"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Or scramble
//	scramble, _ := p.Scramble()
//	fmt.Println(turn.FormatSequence(scramble))
//
// # Notation
//
// Moves are named by kind and face:
//
//	AU KF     slice of the anna or kata hyper-layer
//	U D F B   full-depth half turns
//	I O       inner and outer X slices
//	rU rR     whole-puzzle rotations
//	wU wR     paired W rotations (anna and kata turn opposite ways)
//	G         gyro
//
// A trailing ' plays the move backwards.
package hypercube
