// Package harness provides utilities for integration testing the deku-migrate CLI.
// It handles binary compilation, environment isolation, and command execution.
//
// Environment variables managed:
//   - DEKU_DATA_DIR: Isolated per test (temp directory holding ankideku.db)
//   - DEKU_SOURCE: Points at the per-test V1 directory
//   - DEKU_DEBUG: Disabled to reduce noise
package harness
