package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atomsim/lammpsflow/internal/config"
	"github.com/atomsim/lammpsflow/internal/ctxlog"
	"github.com/atomsim/lammpsflow/internal/workflow"
)

// Run assembles every workflow declared in the loaded specification and
// emits the serialized documents.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	var workflows []*workflow.Workflow

	for _, sim := range a.model.Simulations {
		wf, err := a.assembleTemplate(ctx, sim)
		if err != nil {
			return fmt.Errorf("failed to assemble simulation %q: %w", sim.Name, err)
		}
		workflows = append(workflows, wf)
	}
	for _, packed := range a.model.Packed {
		wf, err := a.assemblePacked(ctx, packed)
		if err != nil {
			return fmt.Errorf("failed to assemble packed simulation %q: %w", packed.Name, err)
		}
		workflows = append(workflows, wf)
	}

	if len(workflows) == 0 {
		a.logger.Warn("Specification declares no workflows, nothing to emit.")
		return nil
	}

	for _, wf := range workflows {
		if err := a.emit(wf); err != nil {
			return err
		}
	}

	a.logger.Info("Workflow assembly finished.", "workflow_count", len(workflows))
	a.logger.Debug("App.Run method finished.")
	return nil
}

// assembleTemplate maps a simulation block onto the template assembler.
func (a *App) assembleTemplate(ctx context.Context, sim *config.TemplateSim) (*workflow.Workflow, error) {
	var settings any
	if sim.Runs != nil {
		settings = sim.Runs
	}
	return workflow.FromTemplate(ctx, sim.Template, workflow.TemplateOptions{
		Settings:      settings,
		Data:          sim.DataFile,
		InputFilename: sim.InputFilename,
		ForceField:    sim.ForceField,
		Command:       a.command(sim.Command),
		DumpFilenames: sim.DumpFiles,
		DBFile:        sim.DBFile,
		Name:          sim.Name,
	})
}

// assemblePacked maps a packed block onto the packing-chain assembler.
func (a *App) assemblePacked(ctx context.Context, packed *config.PackedSim) (*workflow.Workflow, error) {
	return workflow.Packed(ctx, workflow.PackedOptions{
		InputFile:     packed.InputFile,
		Settings:      packed.Settings,
		Molecules:     packed.Molecules,
		Packing:       packed.Packing,
		ForceField:    packed.ForceField,
		BoxSize:       packed.BoxSize,
		SiteProperty:  packed.SiteProperty,
		Tolerance:     packed.Tolerance,
		Filetype:      packed.Filetype,
		ControlParams: packed.ControlParams,
		Command:       a.command(packed.Command),
		DumpFilenames: packed.DumpFiles,
		DBFile:        packed.DBFile,
		Name:          packed.Name,
	})
}

// command resolves the simulation command: the block's own value wins,
// then the app-level override, then the assembler default.
func (a *App) command(blockCommand string) string {
	if blockCommand != "" {
		return blockCommand
	}
	return a.config.Command
}

// emit writes one workflow document to the output directory, or to the
// app's writer when no directory is configured.
func (a *App) emit(wf *workflow.Workflow) error {
	doc, err := json.MarshalIndent(wf, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize workflow %q: %w", wf.Name(), err)
	}

	if a.config.OutDir == "" {
		if _, err := fmt.Fprintf(a.outW, "%s\n", doc); err != nil {
			return err
		}
		return nil
	}

	if err := os.MkdirAll(a.config.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(a.config.OutDir, documentFilename(wf.Name()))
	if err := os.WriteFile(path, append(doc, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write workflow document: %w", err)
	}
	a.logger.Info("Workflow document written.", "name", wf.Name(), "path", path)
	return nil
}

// documentFilename derives a filesystem-safe file name from a workflow name.
func documentFilename(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, name)
	return mapped + ".json"
}
