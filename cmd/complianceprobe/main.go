// complianceprobe is a dev/smoke CLI: it loads a JSON scenario describing
// one gate invocation, runs it against the real gate package, and prints
// the resulting core.GateResult as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/cpi"
	"github.com/ocx/compliance/internal/database"
	"github.com/ocx/compliance/internal/engine"
	"github.com/ocx/compliance/internal/engineconfig"
	"github.com/ocx/compliance/internal/gate"
)

const version = "1.0.0"

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "no .env file found, using environment variables")
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "usage: complianceprobe run <scenario.json>")
			os.Exit(1)
		}
		if err := runScenario(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "probe failed: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("complianceprobe v%s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`complianceprobe v` + version + `

Usage: complianceprobe <command> [args]

Commands:
  run <scenario.json>   Run one gate invocation from a JSON scenario file
  version                Print version
  help                   Show this help

Scenario file shape:
  {"gate": "listingPublish", "input": { ... gate-specific fields ... }}

Supported gate names: listingPublish, listingUpdate, brokerFeeChange,
securityDepositChange, rentIncrease, disclosureRequirement, leaseCreation,
gdprDataOperation, fchaStageTransition, fchaWorkflowTransition,
fchaBackgroundCheck, fchaCriminalCheck`)
}

// scenario is the on-disk shape of a probe input file.
type scenario struct {
	Gate  string          `json:"gate"`
	Input json.RawMessage `json:"input"`
}

func runScenario(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scenario file: %w", err)
	}

	var s scenario
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("parse scenario file: %w", err)
	}

	ctx := context.Background()
	cfg := engineconfig.Get()
	eng := buildEngine(ctx, cfg)

	result, err := dispatch(ctx, eng.Gates(), s.Gate, s.Input, cfg)
	if err != nil {
		return err
	}

	if gr, ok := result.(core.GateResult); ok {
		marketID := marketIDFromInput(s.Input)
		gr.AuditID = eng.RecordGateResultSync(ctx, s.Gate, marketID, gr)
		result = gr
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// buildEngine assembles an engine.Engine from the loaded config: cache
// backend, audit toggles, control id, and the configured database
// collaborators. Any collaborator that fails to construct is skipped with
// a note - the probe still runs the gate without it.
func buildEngine(ctx context.Context, cfg *engineconfig.Config) *engine.Engine {
	opts := []engine.Option{engine.WithControlID(cfg.Audit.ControlID)}

	if cfg.Engine.CacheDisabled {
		opts = append(opts, engine.WithPackStore(engine.NoopPackCache{}))
	} else if cfg.Engine.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Engine.RedisAddr})
		opts = append(opts, engine.WithPackStore(engine.NewRedisPackCache(client)))
	}

	if cfg.Audit.Disabled {
		opts = append(opts, engine.WithAuditDisabled())
	}

	switch cfg.Database.Backend {
	case "supabase":
		store, err := database.NewSupabaseConfigStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "supabase store unavailable, running without sinks: %v\n", err)
		} else {
			opts = append(opts,
				engine.WithMarketConfigFetcher(store),
				engine.WithAuditSink(store),
				engine.WithComplianceCheckSink(store),
			)
		}
	case "spanner":
		sc := cfg.Database.Spanner
		store, err := database.NewSpannerConfigStore(ctx, sc.ProjectID, sc.InstanceID, sc.DatabaseID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "spanner store unavailable, running without sinks: %v\n", err)
		} else {
			opts = append(opts,
				engine.WithMarketConfigFetcher(store),
				engine.WithAuditSink(store),
				engine.WithComplianceCheckSink(store),
			)
		}
	}

	return engine.New(opts...)
}

// marketIDFromInput pulls the MarketID field every gate input carries.
func marketIDFromInput(raw json.RawMessage) string {
	var probe struct {
		MarketID string `json:"MarketID"`
	}
	_ = json.Unmarshal(raw, &probe)
	return probe.MarketID
}

// dispatch decodes Input into the gate-specific struct and invokes it.
// Returns `any` since FCHAWorkflowTransition's result also carries a
// *fcha.Record alongside the usual core.GateResult.
func dispatch(ctx context.Context, r *gate.Runner, gateName string, raw json.RawMessage, cfg *engineconfig.Config) (any, error) {
	switch gateName {
	case "listingPublish":
		var in gate.ListingPublishInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		return r.ListingPublish(ctx, in)

	case "listingUpdate":
		var in gate.ListingUpdateInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		return r.ListingUpdate(ctx, in)

	case "brokerFeeChange":
		var in gate.BrokerFeeChangeInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		return r.BrokerFeeChange(ctx, in)

	case "securityDepositChange":
		var in gate.SecurityDepositChangeInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		return r.SecurityDepositChange(ctx, in)

	case "rentIncrease":
		var in gate.RentIncreaseInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		return r.RentIncrease(ctx, in, cpi.NewExternalProvider(nil, cfg.CPI.APIKey, nil))

	case "disclosureRequirement":
		var in gate.DisclosureRequirementInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		return r.DisclosureRequirement(ctx, in)

	case "leaseCreation":
		var in gate.LeaseCreationInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		return r.LeaseCreation(ctx, in)

	case "gdprDataOperation":
		var in gate.GDPRDataOperationInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		return r.GDPRDataOperation(ctx, in)

	case "fchaStageTransition":
		var in gate.FCHAStageTransitionInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		return r.FCHAStageTransition(ctx, in)

	case "fchaWorkflowTransition":
		var in gate.FCHAWorkflowTransitionInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		result, record, err := r.FCHAWorkflowTransition(ctx, in)
		if err != nil {
			return nil, err
		}
		return struct {
			Result any `json:"result"`
			Record any `json:"record"`
		}{Result: result, Record: record}, nil

	case "fchaBackgroundCheck":
		var in gate.FCHABackgroundCheckInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		return r.FCHABackgroundCheck(ctx, in)

	case "fchaCriminalCheck":
		var in gate.FCHACriminalCheckInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}
		return r.FCHACriminalCheck(ctx, in)
	}

	return nil, fmt.Errorf("unknown gate: %s", gateName)
}
