package server

import (
	"slices"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"image_load",
		"image_dimensions",
		"image_sample_color",
		"image_bulk_keep",
		"pick_add",
		"pick_activate",
		"pick_adjust",
		"pick_set_thresholds",
		"pick_remove",
		"picks_clear",
		"picks_list",
		"picks_export",
		"picks_import",
		"pick_measure_range",
		"display_get",
		"display_save",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("tool count: got %d, want %d", len(tools), len(expectedTools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}
	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties missing")
			}

			// Every required field must be declared.
			required, _ := tool.InputSchema["required"].([]string)
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required field %s not in properties", r)
				}
			}
		})
	}
}

func TestToolDefinitions_Dispatch(t *testing.T) {
	s := New()
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			_, err := s.executeTool(tool.Name, []byte(`{}`))
			if err != nil && err.Error() == "unknown tool: "+tool.Name {
				t.Errorf("tool %s is listed but not dispatched", tool.Name)
			}
		})
	}
}

func TestToolDefinitions_RequiredFields(t *testing.T) {
	tests := map[string][]string{
		"image_load":         {"path"},
		"pick_add":           {"x", "y"},
		"pick_activate":      {"index"},
		"pick_remove":        {"index"},
		"pick_measure_range": {"index", "x", "y"},
		"display_save":       {"path"},
		"image_bulk_keep":    {"path", "references"},
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			required, _ := toolMap[name].InputSchema["required"].([]string)
			for _, w := range want {
				if !slices.Contains(required, w) {
					t.Errorf("%s should require %s, got %v", name, w, required)
				}
			}
		})
	}
}
