package trishare

// Version of the trishare Go implementation.
const Version = "0.4.0"

// API summary:
//
// Padding:
//   - padding.Pad(data) - Length-prefix and align data to 16 bytes
//   - padding.Unpad(padded) - Recover the original bytes
//
// Secret Sharing:
//   - sharing.New(cfg) - Create a splitter for a SharingConfig
//   - (*Splitter).Split(secret) - Split into three verified shares
//   - (*Splitter).Reconstruct(shares) - Verify and recombine three shares
//
// Temporal Delay:
//   - vdf.New(cfg) - Create a delay function for a TemporalConfig
//   - Initialize / Iterate / GetOutput - Run one four-step cycle
//   - GenerateProof / VerifyProof - Attest a completed cycle
//   - vdf.NewIterationState(min, enforce) - Strict timing tracker
//
// Configuration:
//   - core.GetProfile(name) - Named sharing + temporal presets
//   - core.LoadConfig(path) - YAML configuration file
//
// Protected payloads:
//   - protect.New(data, sharingCfg, temporalCfg) - Split and stage one cycle per share
//   - (*Payload).Advance / Reconstruct - Step the cycles, then recover the data
//   - protect.Protect(ctx, data, cfg) - Run every step under a context
