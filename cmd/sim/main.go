package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	fieldruntime "driveyard/internal/adapter/field/runtime"
	metricsinmem "driveyard/internal/adapter/metrics/inmemory"
	"driveyard/internal/adapter/repo/memory"
	"driveyard/internal/app/auth"
	"driveyard/internal/app/tick"
	"driveyard/internal/domain/drive"

	"github.com/google/uuid"
)

// Headless harness: registers one drive against in-memory adapters and
// runs it for a fixed number of ticks, printing each settled move.
func main() {
	var ticks int
	var layoutPath string
	flag.IntVar(&ticks, "ticks", 50, "number of ticks to run")
	flag.StringVar(&layoutPath, "layout", "", "optional YAML layout file")
	flag.Parse()

	layout := fieldruntime.DefaultLayout()
	if layoutPath != "" {
		loaded, err := fieldruntime.LoadLayout(layoutPath)
		if err != nil {
			log.Fatalf("load layout: %v", err)
		}
		layout = loaded
	}

	store := memory.NewStore()
	stateRepo := memory.NewDriveStateRepo(store)
	txManager := memory.NewTxManager(store)
	recorder := metricsinmem.NewRecorder()

	provider, err := fieldruntime.NewProvider(fieldruntime.Config{Layout: layout})
	if err != nil {
		log.Fatalf("build provider: %v", err)
	}

	register := auth.RegisterUseCase{
		Credentials: memory.NewDriveCredentialRepo(store),
		StateRepo:   stateRepo,
		TxManager:   txManager,
		Now:         time.Now,
	}
	reg, err := register.Execute(context.Background(), auth.RegisterRequest{Mode: "basic"})
	if err != nil {
		log.Fatalf("register drive: %v", err)
	}
	fmt.Printf("registered %s on layout %q (%dx%d)\n", reg.DriveID, layout.Name, layout.Width, layout.Height)

	uc := tick.UseCase{
		TxManager: txManager,
		StateRepo: stateRepo,
		TickRepo:  memory.NewTickExecutionRepo(store),
		EventRepo: memory.NewEventRepo(store),
		Field:     provider,
		Metrics:   recorder,
		Agents:    drive.NewRegistry(drive.Planner{}),
		Now:       time.Now,
	}

	for i := 0; i < ticks; i++ {
		resp, err := uc.Execute(context.Background(), tick.Request{
			DriveID:        reg.DriveID,
			IdempotencyKey: uuid.NewString(),
		})
		if err != nil {
			log.Fatalf("tick %d: %v", i+1, err)
		}
		fmt.Printf("tick %3d: %-5s %-6s pos=(%d,%d) plan_remaining=%d\n",
			resp.Tick, resp.Move, resp.ResultCode, resp.State.Pos.X, resp.State.Pos.Y, resp.PlanRemaining)
	}

	summary, _ := json.MarshalIndent(recorder.Snapshot(), "", "  ")
	fmt.Printf("kpi summary:\n%s\n", summary)
}
