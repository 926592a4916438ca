// Package controller turns per-frame input into steering for a dynamic rigid
// body that an external fixed-timestep simulation advances.
//
// The pipeline for one physics tick is
//
//	ActionState.Sample -> IntentFromSnapshot -> ComputeBasis
//	                                  \-> EvaluateJump
//	Sensor.Probe ------------------------> Driver.Advance -> Body
//
// Sampling runs on the frame cadence; everything after it runs once per
// fixed tick through a Stepper. The controller never steps the world itself.
package controller
