package exec

import (
	"strings"
)

// Explain describes an operator and its children for display.
type Explain struct {
	Name       string
	Info       string
	SubExplain []Explain
}

// String renders the explanation as an indented tree.
func (e Explain) String() string {
	var sb strings.Builder
	e.render(&sb, "", "")
	return strings.TrimSuffix(sb.String(), "\n")
}

func (e Explain) render(sb *strings.Builder, branch, indent string) {
	sb.WriteString(branch)
	sb.WriteString(e.Info)
	sb.WriteString("\n")
	for i, sub := range e.SubExplain {
		if i == len(e.SubExplain)-1 {
			sub.render(sb, indent+"└─ ", indent+"   ")
		} else {
			sub.render(sb, indent+"├─ ", indent+"│  ")
		}
	}
}

func explainChildren(op Operator) []Explain {
	children := op.Children()
	subs := make([]Explain, 0, len(children))
	for _, child := range children {
		subs = append(subs, child.Explain())
	}
	return subs
}
