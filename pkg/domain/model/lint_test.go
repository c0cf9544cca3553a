package model_test

import (
	"testing"

	"github.com/m-mizutani/cihelper/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func TestDefaultLintTools(t *testing.T) {
	tools := model.DefaultLintTools()
	gt.Value(t, len(tools)).Equal(4)

	var names []string
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	gt.Value(t, names).Equal([]string{"black", "isort", "docformatter", "flake8"})

	gt.Value(t, tools[2].Tolerates(3)).Equal(true)
	gt.Value(t, tools[2].Tolerates(1)).Equal(false)
	gt.Value(t, tools[3].Fatal).Equal(true)
	gt.Value(t, tools[0].Fatal).Equal(false)
}
