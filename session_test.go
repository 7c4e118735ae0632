package qbscript

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

type scenario struct {
	Name   string   `yaml:"name"`
	Source string   `yaml:"source"`
	File   string   `yaml:"file"`
	Output []string `yaml:"output"`
}

func loadScenarios(t *testing.T) []scenario {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", "scenarios.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var scenarios []scenario
	if err := yaml.NewDecoder(f).Decode(&scenarios); err != nil {
		t.Fatalf("decode scenarios: %v", err)
	}
	for i, sc := range scenarios {
		if sc.File == "" {
			continue
		}
		b, err := os.ReadFile(filepath.Join("testdata", sc.File))
		if err != nil {
			t.Fatal(err)
		}
		scenarios[i].Source = string(b)
	}
	return scenarios
}

func runAll(t *testing.T, src string) []string {
	t.Helper()
	var out []string
	rest, err := NewSession().Run(src, func(val Elem) {
		out = append(out, Print(val))
	})
	if err != nil {
		t.Fatalf("run: %v (rest %q)", err, rest)
	}
	return out
}

func TestScenarios(t *testing.T) {
	for _, sc := range loadScenarios(t) {
		t.Run(sc.Name, func(t *testing.T) {
			first := runAll(t, sc.Source)
			if !reflect.DeepEqual(first, sc.Output) {
				t.Errorf("\nExpected: %q\nActual: %q\n", sc.Output, first)
			}
			// a fresh session must print the same thing again
			if second := runAll(t, sc.Source); !reflect.DeepEqual(first, second) {
				t.Errorf("\nFirst run: %q\nSecond run: %q\n", first, second)
			}
		})
	}
}

func TestRunBlank(t *testing.T) {
	for _, src := range []string{"", "   ", "\n\t\n"} {
		calls := 0
		rest, err := NewSession().Run(src, func(Elem) { calls++ })
		if err != nil || rest != "" || calls != 0 {
			t.Errorf("\nExpr: %q\nActual: %d results, rest %q, err %v\n", src, calls, rest, err)
		}
	}
}

func TestRunParseError(t *testing.T) {
	var out []string
	rest, err := NewSession().Run("(a) )", func(val Elem) {
		out = append(out, Print(val))
	})
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Offset != 4 {
		t.Errorf("expected offset 4, got %d", pe.Offset)
	}
	if rest != ")" {
		t.Errorf("expected rest %q, got %q", ")", rest)
	}
	if !reflect.DeepEqual(out, []string{"(a)"}) {
		t.Errorf("expected forms before the error to run, got %q", out)
	}
}

func TestRunIncomplete(t *testing.T) {
	session := NewSession()
	var out []string
	emit := func(val Elem) { out = append(out, Print(val)) }

	rest, err := session.Run("(let x 1) (add x", emit)
	if !IsIncomplete(err) {
		t.Fatalf("expected incomplete input, got %v", err)
	}
	if rest != "(add x" {
		t.Fatalf("expected pending %q, got %q", "(add x", rest)
	}

	if _, err := session.Run(rest+" 2)", emit); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(out, []string{"x", "3"}) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRunKeepsEnv(t *testing.T) {
	session := NewSession()
	if _, err := session.Run("(let double (fun [n] (add n n)))", nil); err != nil {
		t.Fatal(err)
	}
	var got string
	if _, err := session.Run("(double 4)", func(val Elem) { got = Print(val) }); err != nil {
		t.Fatal(err)
	}
	if got != "8" {
		t.Errorf("expected 8, got %s", got)
	}
	if session.Env.Len() != 1 {
		t.Errorf("expected one binding, got %v", session.Env.Names())
	}
}
