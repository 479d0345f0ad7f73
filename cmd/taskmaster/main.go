package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"

	"github.com/yavdigital/taskmaster/internal/dataset"
	"github.com/yavdigital/taskmaster/pkg/cerr"
)

var (
	app = kingpin.New("taskmaster", "Offline inspection of task management CSV exports")

	validateCmd  = app.Command("validate", "Validate a CSV export and report row-level problems")
	validateFile = validateCmd.Arg("file", "CSV file to validate").Required().ExistingFile()

	kpiCmd  = app.Command("kpi", "Compute the dashboard KPIs for a CSV export")
	kpiFile = kpiCmd.Arg("file", "CSV file to summarize").Required().ExistingFile()
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	var err error
	switch command {
	case validateCmd.FullCommand():
		err = handleValidate(*validateFile)
	case kpiCmd.FullCommand():
		err = handleKPI(*kpiFile)
	}
	if err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

// importFile runs a file through the same import pipeline the server
// uses, without persisting anything.
func importFile(path string) (*dataset.Service, *dataset.ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	service := dataset.NewService(discardRepository{}, 0)
	result, err := service.Import(context.Background(), path, data)
	if err != nil {
		return nil, nil, err
	}
	return service, result, nil
}

func handleValidate(path string) error {
	_, result, err := importFile(path)
	if err != nil {
		return err
	}
	fmt.Printf("schema:   %s\n", result.Schema)
	fmt.Printf("rows:     %d\n", result.TotalRows)
	color.Green("imported: %d", result.Imported)
	if result.Errored > 0 {
		color.Yellow("errored:  %d (rows without an integer ID)", result.Errored)
	} else {
		fmt.Println("errored:  0")
	}
	return nil
}

func handleKPI(path string) error {
	service, result, err := importFile(path)
	if err != nil {
		return err
	}
	kpis := service.Views().KPIs

	bold := color.New(color.Bold)
	bold.Printf("%s (%s schema, %d tasks)\n\n", result.FileName, result.Schema, result.Imported)
	fmt.Printf("total:                 %d\n", kpis.Total)
	fmt.Printf("active:                %d\n", kpis.Active)
	fmt.Printf("pending:               %d\n", kpis.Pending)
	fmt.Printf("in progress:           %d\n", kpis.InProgress)
	fmt.Printf("completed:             %d\n", kpis.Completed)
	fmt.Printf("completed this week:   %d\n", kpis.CompletedThisWeek)
	if kpis.Overdue > 0 {
		color.Red("overdue:               %d", kpis.Overdue)
	} else {
		fmt.Printf("overdue:               %d\n", kpis.Overdue)
	}
	fmt.Printf("stale:                 %d\n", kpis.Stale)
	fmt.Printf("high priority pending: %d\n", kpis.HighPriorityPending)
	fmt.Printf("pending external:      %d\n", kpis.PendingExternal)
	fmt.Printf("client active time:    %s\n", kpis.ClientActiveTime)
	return nil
}

// discardRepository satisfies dataset.Repository for one-shot CLI runs.
type discardRepository struct{}

func (discardRepository) Load(ctx context.Context) (*dataset.Snapshot, error) {
	return nil, cerr.NewError(cerr.NotFound, "no snapshot", nil)
}

func (discardRepository) Save(ctx context.Context, s *dataset.Snapshot) error { return nil }

func (discardRepository) Delete(ctx context.Context) error { return nil }
