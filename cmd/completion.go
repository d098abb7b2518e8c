package cmd

import (
	"github.com/etnz/allot/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the allot command line for shell completion.
func Completion() *complete.Command {
	topics, _ := docs.GetAllTopics()
	topics = append(topics, "readme")

	request := map[string]complete.Predictor{
		"f": predict.Files("*.json"),
	}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"allocate": {
				Flags: map[string]complete.Predictor{
					"f":        predict.Files("*.json"),
					"deposits": predict.Files("*.json"),
					"path":     predict.Something,
					"json":     nil,
					"trace":    nil,
				},
			},
			"validate": {Flags: request},
			"order":    {Flags: request},
			"topic":    {Args: predict.Set(topics), Flags: map[string]complete.Predictor{"list": nil}},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
			"v":      nil,
			"raw":    nil,
		},
	}
}
