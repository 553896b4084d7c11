package frontmatter

import (
	"errors"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTitle string
		wantBody  string
	}{
		{
			name: "YAML frontmatter",
			input: `---
title: Щедрик
author: Микола Леонтович
tags: [щедрівка]
---

# Щедрик

Щедрик, щедрик, щедрівочка`,
			wantTitle: "Щедрик",
			wantBody: `# Щедрик

Щедрик, щедрик, щедрівочка`,
		},
		{
			name: "TOML frontmatter",
			input: `+++
title = "Добрий вечір тобі"
author = "народна"
+++

Добрий вечір тобі, пане господарю`,
			wantTitle: "Добрий вечір тобі",
			wantBody:  `Добрий вечір тобі, пане господарю`,
		},
		{
			name: "No frontmatter",
			input: `# Нова радість стала

Яка не бувала`,
			wantBody: `# Нова радість стала

Яка не бувала`,
		},
		{
			name: "Empty frontmatter",
			input: `---

---

# Song`,
			wantBody: `# Song`,
		},
		{
			name: "Dashes in content are not frontmatter",
			input: `# Song

--- not metadata ---

More.`,
			wantBody: `# Song

--- not metadata ---

More.`,
		},
		{
			name: "Footer divider stays in content",
			input: `# Song

Verse

---

Записано в с. Колочава`,
			wantBody: `# Song

Verse

---

Записано в с. Колочава`,
		},
		{
			name: "Leading divider pair is not frontmatter",
			input: `---
# Song

Verse

---
Записано в с. Колочава
`,
			wantBody: `---
# Song

Verse

---
Записано в с. Колочава
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, body, err := Split(tt.input)
			if err != nil {
				t.Fatalf("Split() error: %v", err)
			}
			if meta.Title != tt.wantTitle {
				t.Errorf("Split() title = %q, want %q", meta.Title, tt.wantTitle)
			}
			if body != tt.wantBody {
				t.Errorf("Split() body mismatch\nGot:\n%q\nExpected:\n%q", body, tt.wantBody)
			}
		})
	}
}

func TestSplitMalformed(t *testing.T) {
	inputs := []string{
		"---\ntitle: [unclosed\n---\n\n# Song",
		"+++\ntitle = \n+++\n\n# Song",
	}
	for _, in := range inputs {
		_, _, err := Split(in)
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("Split(%q) error = %v, want ErrMalformed", in, err)
		}
	}
}
