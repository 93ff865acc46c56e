package toolkit

import "go.uber.org/zap"

// ResetState clears the one-shot install flag and restores a no-op global
// logger so tests can initialize the pipeline repeatedly. The OTel globals
// are left as the last Init set them; tests that care install fresh
// providers. This function is intended for testing only.
func ResetState() {
	installed.Store(false)
	zap.ReplaceGlobals(zap.NewNop())
}
