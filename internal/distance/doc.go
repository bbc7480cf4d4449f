// Package distance builds the class-to-class distance matrix consumed by the
// Generalized Wasserstein Dice loss.
//
// The base tables cover the 32 tooth classes (FDI order: quadrants 1-4, eight
// teeth each) and ship embedded in the binary as NumPy .npy files. Build adds
// the background class at index 0 and uploads the result to a Born backend:
//
//	backend := autodiff.New(cpu.New())
//	m, err := distance.Build(backend, distance.QuarterPenalty)
//	// m.Shape() == [33 33], m.At(0, 0) == 0
package distance
