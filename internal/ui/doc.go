// Package ui contains the Bubble Tea program that lets a user merge two
// lists into a new one.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, window sizes, spinner ticks, backend events).
//   - Key presses are first offered to the filter of the focused pane
//     (input.go), then to cursor movement, then to the bindings of the current
//     mode (navigation.go). Partition operations live in merge.go.
//
// State ownership:
//   - partition.Manager owns the grouping, the selection and the draft, and
//     decides which operations are legal. The UI never edits lists directly.
//   - internal/ui/state.Pane tracks rows, filtering and viewport for the list
//     pane and the three merge columns; panes are rebuilt from the manager after
//     every operation.
//   - The catalog store keeps the last fetched records, which serve as the
//     baseline for the conservation audit run after every mutation.
//
// Backend interactions:
//   - A backend.Loader performs fetches. Every load gets a sequence number;
//     the dispatcher drops results for anything but the outstanding one, so a
//     slow response from before a cancel cannot overwrite newer state.
//   - Cancelling a merge re-enters loading and requests a fresh fetch, which
//     replaces the grouping wholesale.
package ui
