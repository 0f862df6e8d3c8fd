package commands

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

// Init implements the 'easel init' command
func Init(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	name := fs.String("name", "", "Project name")
	demoName := fs.String("demo", "", "Demo to run")
	path := fs.String("config", ConfigFile, "Configuration file to write")
	force := fs.Bool("force", false, "Overwrite an existing file")
	fs.Parse(args)

	// Get project name from args or current directory
	projectName := *name
	if projectName == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		projectName = filepath.Base(cwd)
	}

	if _, err := os.Stat(*path); err == nil && !*force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", *path)
	}

	config := DefaultConfig()
	config.App.Name = projectName
	config.App.Title = projectName
	if *demoName != "" {
		config.Demo.Name = *demoName
	}
	if err := config.Validate(); err != nil {
		return err
	}

	if err := SaveConfig(*path, config); err != nil {
		return err
	}
	fmt.Printf("  ✓ Created %s\n", *path)
	fmt.Println("")
	fmt.Println("Next steps:")
	fmt.Println("  easel run            # Open the window")
	fmt.Println("  easel run --watch    # Reload the canvas size on save")

	return nil
}
