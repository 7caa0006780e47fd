// Package ui contains the Bubble Tea program that powers the container
// process viewer. The package is structured so the Model type focuses on
// message orchestration, while dedicated helpers own navigation, input,
// rendering, and state updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Messages are routed through a typed handler registry so each tea.Msg is
//     handled by a focused function (for example, navigation for key presses
//     or watcher events for snapshot updates).
//   - Navigation helpers (internal/ui/navigation.go) manage the picker
//     cursor, the process tree cursor and fold state, and the signal overlay.
//     Filter/input helpers (internal/ui/input.go) keep all text entry
//     concerns isolated from the Bubble Tea event loop.
//
// State ownership:
//   - Picker and signal list state lives in internal/ui/state.Level, which
//     tracks items, filtering, selection, and viewport calculations.
//   - Container, process, details, and stats stores are provided by
//     internal/state and kept in sync by the dispatcher, so the info view
//     always renders the latest snapshots.
//   - The process tree itself is a treeview.Model over proctree's lazy
//     navigation, so collapse state and the cursor survive snapshot swaps.
//   - Signal execution is handled through the internal/ui/command package,
//     letting menu actions run asynchronously via the central command bus.
//
// Watcher interactions:
//   - A list watcher streams container-list snapshots for the picker; opening
//     a container starts a second watcher for its top, inspect, and stats
//     feeds. Each event re-arms its own wait command, and per-container
//     events carry their source watcher so stale events from an abandoned
//     container are dropped.
//
// This separation keeps Model.Update compact and makes it easier to test
// independent concerns (navigation, filtering, watcher sync) without needing
// to reason about the entire TUI at once.
package ui
