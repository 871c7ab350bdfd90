// Package ui contains the Bubble Tea program that hosts a popup menu tree.
// The Model type orchestrates messages; menus, typeahead and surface
// lifecycles live in their own packages and never see tea.Msg values.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (keys, mouse, resize, animation ticks).
//   - Menus post continuations (timer callbacks, lifecycle notifications) to
//     an inbox. A command blocks on the inbox and delivers each continuation
//     as an inboxMsg, so all menu state is touched from Update only.
//   - Surface controllers run on worker goroutines. When one asks for a
//     frame, the model lays everything out on the next inbox turn and then
//     settles the frame, which lets the controller measure.
//
// Rendering:
//   - layout.go assigns cells to the trigger, each visible surface and its
//     rows. Rows double as anchors for submenus.
//   - view.go composites surfaces onto a canvas in tree order, so submenus
//     draw over their parents, and appends the footer.
//   - animate.go implements menu.Animator by revealing rows over time.
//
// Selection side effects such as copying a value run through the
// internal/ui/command bus once the root menu has closed.
package ui
