package controlflow

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const sampleDocument = `{
  "name": "Counter",
  "methods": [
    {
      "name": "increment",
      "returnType": "void",
      "visibility": "public",
      "params": [{"name": "by", "type": "int"}],
      "controlTree": {
        "kind": "sequence",
        "children": [
          {"kind": "statement", "text": "count = count + by;"},
          {
            "kind": "if",
            "condition": "count > max",
            "thenBranch": [{"kind": "statement", "text": "count = max;"}]
          }
        ]
      }
    },
    {
      "name": "reset",
      "isStatic": true,
      "signature": "reset()"
    }
  ]
}`

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}

	if doc.Name != "Counter" {
		t.Errorf("Name = %q, want %q", doc.Name, "Counter")
	}
	if len(doc.Methods) != 2 {
		t.Fatalf("len(Methods) = %d, want 2", len(doc.Methods))
	}

	inc := doc.Methods[0]
	if inc.Name != "increment" || inc.ReturnType != "void" || inc.Visibility != "public" {
		t.Errorf("method metadata = %q/%q/%q", inc.Name, inc.ReturnType, inc.Visibility)
	}
	if !reflect.DeepEqual(inc.Params, []Param{{Name: "by", Type: "int"}}) {
		t.Errorf("Params = %v", inc.Params)
	}
	if inc.ControlTree == nil || inc.ControlTree.Kind != KindSequence {
		t.Fatalf("ControlTree = %v, want sequence root", inc.ControlTree)
	}
	if len(inc.ControlTree.Children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(inc.ControlTree.Children))
	}

	ifNode := inc.ControlTree.Children[1]
	if ifNode.Kind != KindIf || ifNode.Condition != "count > max" {
		t.Errorf("if node = %q %q", ifNode.Kind, ifNode.Condition)
	}
	if len(ifNode.ThenBranch) != 1 || len(ifNode.ElseBranch) != 0 {
		t.Errorf("branches = %d/%d, want 1/0", len(ifNode.ThenBranch), len(ifNode.ElseBranch))
	}

	reset := doc.Methods[1]
	if !reset.Static {
		t.Error("reset should be static")
	}
	if reset.ControlTree != nil {
		t.Error("reset should have no control tree")
	}
}

func TestParseDocumentInvalid(t *testing.T) {
	if _, err := ParseDocument([]byte("{not json")); err == nil {
		t.Error("ParseDocument() should fail on malformed JSON")
	}
}

func TestReadDocumentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte(sampleDocument), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := ReadDocumentFile(path)
	if err != nil {
		t.Fatalf("ReadDocumentFile() error = %v", err)
	}
	if len(doc.Methods) != 2 {
		t.Errorf("len(Methods) = %d, want 2", len(doc.Methods))
	}

	if _, err := ReadDocumentFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadDocumentFile() should fail on a missing file")
	}
}

func TestDocumentMethod(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleDocument))
	if err != nil {
		t.Fatal(err)
	}

	m, ok := doc.Method("reset")
	if !ok || m.Name != "reset" {
		t.Errorf("Method(reset) = %v, %v", m, ok)
	}
	if _, ok := doc.Method("unknown"); ok {
		t.Error("Method(unknown) should report not found")
	}

	want := []string{"increment", "reset"}
	if got := doc.MethodNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("MethodNames() = %v, want %v", got, want)
	}
}

func TestIsPostTest(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want bool
	}{
		{"do-while loop", Node{Kind: KindLoop, LoopKind: LoopDoWhile}, true},
		{"while loop", Node{Kind: KindLoop, LoopKind: LoopWhile}, false},
		{"missing loop kind", Node{Kind: KindLoop}, false},
		{"non-loop", Node{Kind: KindStatement, LoopKind: LoopDoWhile}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.IsPostTest(); got != tt.want {
				t.Errorf("IsPostTest() = %v, want %v", got, tt.want)
			}
		})
	}
}
