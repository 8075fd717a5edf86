package syntax

import (
	"strings"
	"testing"
)

const sampleTree = `{
  "name": "intro.skein",
  "tags": ["chapter1"],
  "nodes": [
    {
      "headers": [
        {"key": "title", "value": "Start", "span": {"start": {"line": 0, "character": 0}, "end": {"line": 0, "character": 12}}},
        {"key": "tags", "value": "tracking outdoor", "span": {"start": {"line": 1, "character": 0}, "end": {"line": 1, "character": 21}}}
      ],
      "body": {
        "statements": [
          {
            "kind": "line",
            "text": "Hello, {0}!",
            "tags": ["line:greet1"],
            "substitutions": [
              {"kind": "variable", "name": "$player", "span": {"start": {"line": 3, "character": 8}, "end": {"line": 3, "character": 15}}}
            ],
            "span": {"start": {"line": 3, "character": 0}, "end": {"line": 3, "character": 16}}
          },
          {
            "kind": "set",
            "variable": "$gold",
            "assign": "+=",
            "value": {"kind": "number", "number": 5, "span": {"start": {"line": 4, "character": 14}, "end": {"line": 4, "character": 15}}},
            "span": {"start": {"line": 4, "character": 0}, "end": {"line": 4, "character": 17}}
          }
        ],
        "start": {"line": 3, "character": 0},
        "end": {"line": 5, "character": 0}
      }
    }
  ]
}`

func TestDecodeFileSample(t *testing.T) {
	f, err := DecodeFile("", []byte(sampleTree))
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if f.Name != "intro.skein" {
		t.Fatalf("Name = %q", f.Name)
	}
	if len(f.Nodes) != 1 {
		t.Fatalf("Nodes = %d, want 1", len(f.Nodes))
	}

	n := &f.Nodes[0]
	title, ok := n.Title()
	if !ok || title != "Start" {
		t.Fatalf("Title = %q, %v", title, ok)
	}
	tags := n.NodeTags()
	if len(tags) != 2 || tags[0] != "tracking" || tags[1] != "outdoor" {
		t.Fatalf("NodeTags = %v", tags)
	}

	if len(n.Body.Statements) != 2 {
		t.Fatalf("Statements = %d, want 2", len(n.Body.Statements))
	}
	line := n.Body.Statements[0]
	if line.Kind != StmtLine || line.Text != "Hello, {0}!" {
		t.Fatalf("line = %+v", line)
	}
	if len(line.Substitutions) != 1 || line.Substitutions[0].Kind != ExprVariable {
		t.Fatalf("substitutions = %+v", line.Substitutions)
	}
	set := n.Body.Statements[1]
	if set.Kind != StmtSet || set.Assign != AssignAdd || set.Value.Number != 5 {
		t.Fatalf("set = %+v", set)
	}
}

func TestDecodeFileNameOverride(t *testing.T) {
	f, err := DecodeFile("renamed.skein", []byte(sampleTree))
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if f.Name != "renamed.skein" {
		t.Fatalf("Name = %q", f.Name)
	}
}

func TestDecodeFileRejectsUnknownKinds(t *testing.T) {
	bad := strings.Replace(sampleTree, `"kind": "set"`, `"kind": "teleport"`, 1)
	_, err := DecodeFile("", []byte(bad))
	if err == nil {
		t.Fatalf("unknown statement kind accepted")
	}
	if !strings.Contains(err.Error(), "teleport") {
		t.Fatalf("error does not name the bad kind: %v", err)
	}
}

func TestDecodeFileRejectsUnknownOperator(t *testing.T) {
	bad := strings.Replace(sampleTree, `"assign": "+="`, `"assign": "**="`, 1)
	if _, err := DecodeFile("", []byte(bad)); err == nil {
		t.Fatalf("unknown assignment operator accepted")
	}
}

func TestDecodeFileRequiresName(t *testing.T) {
	if _, err := DecodeFile("", []byte(`{"nodes": []}`)); err == nil {
		t.Fatalf("nameless tree accepted")
	}
}

func TestEncodeDecodeKeepsKinds(t *testing.T) {
	f, err := DecodeFile("", []byte(sampleTree))
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	data, err := EncodeFile(f)
	if err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}
	again, err := DecodeFile("", data)
	if err != nil {
		t.Fatalf("DecodeFile(encoded): %v", err)
	}
	if again.Nodes[0].Body.Statements[1].Assign != AssignAdd {
		t.Fatalf("assign operator lost in round trip")
	}
}

func TestTitleRepeatedHeaderLastWins(t *testing.T) {
	n := Node{Headers: []Header{
		{Key: HeaderTitle, Value: "Draft"},
		{Key: HeaderTags, Value: "outdoor"},
		{Key: HeaderTitle, Value: "Start"},
	}}
	title, ok := n.Title()
	if !ok || title != "Start" {
		t.Fatalf("Title = %q, %v; want Start", title, ok)
	}
}
