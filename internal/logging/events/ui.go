package events

import "github.com/atomicstack/popup-menu/internal/logging"

type UITracer struct{}

type SurfaceTracer struct{}

type TypeaheadTracer struct{}

type SubmenuTracer struct{}

type MenuTracer struct{}

type CommandTracer struct{}

var (
	UI        = UITracer{}
	Surface   = SurfaceTracer{}
	Typeahead = TypeaheadTracer{}
	Submenu   = SubmenuTracer{}
	Menu      = MenuTracer{}
	Command   = CommandTracer{}
)

func (UITracer) Key(menuID, key string) {
	logging.Trace("ui.key", map[string]interface{}{"menu": menuID, "key": key})
}

func (UITracer) Mouse(action string, x, y int) {
	logging.Trace("ui.mouse", map[string]interface{}{"action": action, "x": x, "y": y})
}

func (UITracer) Frame(generation uint64, surfaces int) {
	logging.Trace("ui.frame", map[string]interface{}{"generation": generation, "surfaces": surfaces})
}

func (SurfaceTracer) Skip(surfaceID, reason string) {
	logging.Trace("surface.skip", map[string]interface{}{"surface": surfaceID, "reason": reason})
}

func (SurfaceTracer) Open(surfaceID, anchorCorner, surfaceCorner string, topLayer bool) {
	logging.Trace("surface.open", map[string]interface{}{
		"surface":       surfaceID,
		"anchorCorner":  anchorCorner,
		"surfaceCorner": surfaceCorner,
		"topLayer":      topLayer,
	})
}

func (SurfaceTracer) Positioned(surfaceID string, payload map[string]interface{}) {
	payload["surface"] = surfaceID
	logging.Trace("surface.positioned", payload)
}

func (SurfaceTracer) Close(surfaceID string) {
	logging.Trace("surface.close", map[string]interface{}{"surface": surfaceID})
}

func (SurfaceTracer) Hidden(surfaceID string) {
	logging.Trace("surface.hidden", map[string]interface{}{"surface": surfaceID})
}

func (SurfaceTracer) Error(surfaceID string, err error) {
	if err == nil {
		return
	}
	logging.Trace("surface.error", map[string]interface{}{"surface": surfaceID, "error": err.Error()})
}

func (TypeaheadTracer) Begin(records int, anchor int) {
	logging.Trace("typeahead.begin", map[string]interface{}{"records": records, "anchor": anchor})
}

func (TypeaheadTracer) Select(buffer string, index int, headline string) {
	logging.Trace("typeahead.select", map[string]interface{}{"buffer": buffer, "index": index, "headline": headline})
}

func (TypeaheadTracer) Miss(buffer string) {
	logging.Trace("typeahead.miss", map[string]interface{}{"buffer": buffer})
}

func (TypeaheadTracer) End(reason string) {
	logging.Trace("typeahead.end", map[string]interface{}{"reason": reason})
}

func (SubmenuTracer) HoverOpen(itemID string) {
	logging.Trace("submenu.hover-open", map[string]interface{}{"item": itemID})
}

func (SubmenuTracer) HoverClose(itemID string) {
	logging.Trace("submenu.hover-close", map[string]interface{}{"item": itemID})
}

func (SubmenuTracer) KeyOpen(itemID string) {
	logging.Trace("submenu.key-open", map[string]interface{}{"item": itemID})
}

func (SubmenuTracer) KeyClose(itemID string) {
	logging.Trace("submenu.key-close", map[string]interface{}{"item": itemID})
}

func (SubmenuTracer) Cascade(itemID, reason string, depth int, stopped bool) {
	logging.Trace("submenu.cascade", map[string]interface{}{
		"item":    itemID,
		"reason":  reason,
		"depth":   depth,
		"stopped": stopped,
	})
}

func (MenuTracer) Event(menuID, event string) {
	logging.Trace("menu."+event, map[string]interface{}{"menu": menuID})
}

func (MenuTracer) Close(menuID, initiator, reason string) {
	logging.Trace("menu.close-request", map[string]interface{}{"menu": menuID, "initiator": initiator, "reason": reason})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
