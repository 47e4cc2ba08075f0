package appstate

// Tool is the toolbar mode. It decides which option panel is shown.
type Tool int

const (
	ToolSelect Tool = iota
	ToolShapes
	ToolFill
	ToolStrokeColor
	ToolStrokeWidth
	ToolOpacity
)

var toolNames = map[Tool]string{
	ToolSelect:      "select",
	ToolShapes:      "shapes",
	ToolFill:        "fill",
	ToolStrokeColor: "stroke-color",
	ToolStrokeWidth: "stroke-width",
	ToolOpacity:     "opacity",
}

func (t Tool) String() string { return toolNames[t] }

// SelectionDependent reports whether the tool edits the selection and so
// has nothing to do once the selection is gone.
func (t Tool) SelectionDependent() bool {
	switch t {
	case ToolFill, ToolStrokeColor, ToolStrokeWidth, ToolOpacity:
		return true
	}
	return false
}

type toolButton struct {
	tool  Tool
	key   rune
	label string
}

var toolButtons = []toolButton{
	{ToolSelect, '1', "Select"},
	{ToolShapes, '2', "Shapes"},
	{ToolFill, '3', "Fill"},
	{ToolStrokeColor, '4', "Stroke"},
	{ToolStrokeWidth, '5', "Width"},
	{ToolOpacity, '6', "Opacity"},
}

// switchTool picks t, or drops back to select when t is already active.
func switchTool(current, t Tool) Tool {
	if t == current {
		return ToolSelect
	}
	return t
}
