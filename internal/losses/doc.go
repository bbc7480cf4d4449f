// Package losses implements the segmentation losses: Dice, cross-entropy,
// Generalized Wasserstein Dice, and the two compound losses built from them
// (DiceCELoss and GWDLCELoss).
//
// All losses are compositions of differentiable Born tensor operations, so
// wrapping the backend with autodiff is enough to train through them:
//
//	backend := autodiff.New(cpu.New())
//	loss, _ := losses.NewDiceCELoss(losses.DefaultDiceCEConfig[Backend](), backend)
//
//	backend.Tape().StartRecording()
//	res, err := loss.Forward(logits, labels)
//	grads := autodiff.Backward(loss.Total(res), backend)
//
// Compound losses return their two terms separately (Result); weighting them
// is left to the caller.
package losses
