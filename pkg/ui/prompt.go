package ui

import (
	"strings"

	"github.com/pterm/pterm"

	"github.com/appforge/appforge/pkg/config"
)

// PromptConfig collects the full AppConfig interactively. Prompting
// loops until every answer validates; the returned config is complete.
func PromptConfig() (config.AppConfig, error) {
	name, err := promptName()
	if err != nil {
		return config.AppConfig{}, err
	}

	displayName, err := promptNonEmpty("What name should appear for your app across the UI?")
	if err != nil {
		return config.AppConfig{}, err
	}

	description, err := pterm.DefaultInteractiveTextInput.
		WithDefaultValue(config.DefaultDescription).
		Show("App description")
	if err != nil {
		return config.AppConfig{}, err
	}

	opts := config.Options{
		Name:        name,
		DisplayName: displayName,
		Description: strings.TrimSpace(description),
	}

	confirms := []struct {
		prompt string
		target *bool
	}{
		{"Setup database?", &opts.SetupDatabase},
		{"Initialize a git repository?", &opts.InitializeGit},
		{"Enable Docker integration?", &opts.EnableDocker},
		{"Enable authentication system?", &opts.EnableAuth},
		{"Enable soft delete for models?", &opts.EnableSoftDelete},
		{"Enable VPS deployment configuration?", &opts.EnableVPSDeployment},
	}
	for _, c := range confirms {
		answer, err := pterm.DefaultInteractiveConfirm.
			WithDefaultValue(true).
			Show(c.prompt)
		if err != nil {
			return config.AppConfig{}, err
		}
		*c.target = answer
	}

	return config.New(opts)
}

func promptName() (string, error) {
	for {
		name, err := pterm.DefaultInteractiveTextInput.Show("What is your app's name?")
		if err != nil {
			return "", err
		}
		name = strings.TrimSpace(name)
		if err := config.ValidateName(name); err != nil {
			pterm.Warning.Println(err.Error())
			continue
		}
		return name, nil
	}
}

func promptNonEmpty(prompt string) (string, error) {
	for {
		answer, err := pterm.DefaultInteractiveTextInput.Show(prompt)
		if err != nil {
			return "", err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			pterm.Warning.Println("This field cannot be empty")
			continue
		}
		return answer, nil
	}
}
