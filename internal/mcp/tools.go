package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pkarpov/crewdeck/internal/dashboard"
	"github.com/pkarpov/crewdeck/internal/domain/timelog"
	"github.com/pkarpov/crewdeck/internal/view"
)

type listModulesInput struct{}

type moduleInfo struct {
	Name      string   `json:"name" jsonschema:"module name"`
	Tabs      []string `json:"tabs" jsonschema:"record collections the module exposes"`
	ActiveTab string   `json:"active_tab" jsonschema:"currently selected tab"`
	Loading   bool     `json:"loading" jsonschema:"whether any collection is still loading"`
}

type listModulesOutput struct {
	Modules []moduleInfo `json:"modules"`
}

type listRecordsInput struct {
	Module    string              `json:"module" jsonschema:"module name from list_modules"`
	Tab       string              `json:"tab,omitempty" jsonschema:"tab to select before projecting (optional)"`
	Query     string              `json:"query,omitempty" jsonschema:"case-insensitive substring search (optional)"`
	Filters   map[string][]string `json:"filters,omitempty" jsonschema:"field to accepted values; the value 'all' clears a field (optional)"`
	Sort      string              `json:"sort,omitempty" jsonschema:"sort field (optional)"`
	Direction string              `json:"direction,omitempty" jsonschema:"asc or desc (optional, default asc)"`
}

type listRecordsOutput struct {
	Module  string           `json:"module"`
	Tab     string           `json:"tab"`
	Records []map[string]any `json:"records"`
}

type getMetricsInput struct {
	Module string `json:"module" jsonschema:"module name from list_modules"`
}

type getMetricsOutput struct {
	Module  string         `json:"module"`
	Metrics map[string]any `json:"metrics"`
}

type createRecordInput struct {
	Module string         `json:"module" jsonschema:"module name from list_modules"`
	Tab    string         `json:"tab" jsonschema:"tab to create the record in"`
	Record map[string]any `json:"record" jsonschema:"record fields; id is assigned when omitted"`
}

type updateRecordInput struct {
	Module string         `json:"module" jsonschema:"module name from list_modules"`
	Tab    string         `json:"tab" jsonschema:"tab the record lives in"`
	ID     string         `json:"id" jsonschema:"record id"`
	Patch  map[string]any `json:"patch" jsonschema:"fields to change; unspecified fields are kept"`
}

type recordOutput struct {
	Record map[string]any `json:"record"`
}

type deleteRecordInput struct {
	Module string `json:"module" jsonschema:"module name from list_modules"`
	Tab    string `json:"tab" jsonschema:"tab the record lives in"`
	ID     string `json:"id" jsonschema:"record id"`
}

type deleteRecordOutput struct {
	Deleted bool `json:"deleted"`
}

type refreshModuleInput struct {
	Module string `json:"module" jsonschema:"module name from list_modules"`
}

type refreshModuleOutput struct {
	Module string `json:"module"`
}

type startTimerInput struct {
	Label   string `json:"label" jsonschema:"what is being worked on"`
	Project string `json:"project,omitempty" jsonschema:"project the work belongs to (optional)"`
}

type startTimerOutput struct {
	Label     string `json:"label"`
	Project   string `json:"project,omitempty"`
	StartedAt string `json:"started_at"`
}

type stopTimerInput struct{}

type stopTimerOutput struct {
	Minutes int            `json:"minutes"`
	Log     map[string]any `json:"log"`
}

func registerTools(server *sdkmcp.Server, registry *dashboard.Registry, tracker *timelog.Tracker) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_modules",
		Description: "List dashboard modules with their tabs and load state",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ listModulesInput) (*sdkmcp.CallToolResult, listModulesOutput, error) {
		var out listModulesOutput
		for _, m := range registry.Modules() {
			out.Modules = append(out.Modules, moduleInfo{
				Name:      m.Name(),
				Tabs:      m.Tabs(),
				ActiveTab: m.State().Tab,
				Loading:   m.Loading(),
			})
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_records",
		Description: "List the records of a module tab, optionally searched, filtered and sorted",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input listRecordsInput) (*sdkmcp.CallToolResult, listRecordsOutput, error) {
		m, err := lookupModule(registry, input.Module)
		if err != nil {
			return nil, listRecordsOutput{}, err
		}
		if err := applyRecordsView(m, input); err != nil {
			return nil, listRecordsOutput{}, err
		}

		records := make([]map[string]any, 0)
		for _, rec := range m.Projection() {
			doc, err := asDocument(rec)
			if err != nil {
				return nil, listRecordsOutput{}, err
			}
			records = append(records, doc)
		}
		return nil, listRecordsOutput{Module: m.Name(), Tab: m.State().Tab, Records: records}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_metrics",
		Description: "Get a module's metrics, computed over the full collections regardless of filters",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input getMetricsInput) (*sdkmcp.CallToolResult, getMetricsOutput, error) {
		m, err := lookupModule(registry, input.Module)
		if err != nil {
			return nil, getMetricsOutput{}, err
		}
		metrics, err := asDocument(m.Metrics())
		if err != nil {
			return nil, getMetricsOutput{}, err
		}
		return nil, getMetricsOutput{Module: m.Name(), Metrics: metrics}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_record",
		Description: "Create a record in a module tab; the record appears only after the backend confirms it",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input createRecordInput) (*sdkmcp.CallToolResult, recordOutput, error) {
		m, err := lookupModule(registry, input.Module)
		if err != nil {
			return nil, recordOutput{}, err
		}
		body, err := json.Marshal(input.Record)
		if err != nil {
			return nil, recordOutput{}, err
		}
		created, err := m.Create(ctx, input.Tab, body)
		if err != nil {
			return nil, recordOutput{}, err
		}
		doc, err := asDocument(created)
		if err != nil {
			return nil, recordOutput{}, err
		}
		return nil, recordOutput{Record: doc}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_record",
		Description: "Apply a partial update to a record; unspecified fields keep their values",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input updateRecordInput) (*sdkmcp.CallToolResult, recordOutput, error) {
		m, err := lookupModule(registry, input.Module)
		if err != nil {
			return nil, recordOutput{}, err
		}
		updated, err := m.Update(ctx, input.Tab, input.ID, input.Patch)
		if err != nil {
			return nil, recordOutput{}, err
		}
		doc, err := asDocument(updated)
		if err != nil {
			return nil, recordOutput{}, err
		}
		return nil, recordOutput{Record: doc}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_record",
		Description: "Delete a record from a module tab",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input deleteRecordInput) (*sdkmcp.CallToolResult, deleteRecordOutput, error) {
		m, err := lookupModule(registry, input.Module)
		if err != nil {
			return nil, deleteRecordOutput{}, err
		}
		if err := m.Remove(ctx, input.Tab, input.ID); err != nil {
			return nil, deleteRecordOutput{}, err
		}
		return nil, deleteRecordOutput{Deleted: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "refresh_module",
		Description: "Reload every collection of a module from the backend",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input refreshModuleInput) (*sdkmcp.CallToolResult, refreshModuleOutput, error) {
		m, err := lookupModule(registry, input.Module)
		if err != nil {
			return nil, refreshModuleOutput{}, err
		}
		if err := m.Refresh(ctx); err != nil {
			return nil, refreshModuleOutput{}, err
		}
		return nil, refreshModuleOutput{Module: m.Name()}, nil
	})

	if tracker == nil {
		return
	}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "start_timer",
		Description: "Start the work timer; only one timer can run at a time",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, input startTimerInput) (*sdkmcp.CallToolResult, startTimerOutput, error) {
		session, err := tracker.Start(input.Label, input.Project)
		if err != nil {
			return nil, startTimerOutput{}, err
		}
		return nil, startTimerOutput{
			Label:     session.Label,
			Project:   session.Project,
			StartedAt: session.StartedAt.Format(time.RFC3339),
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "stop_timer",
		Description: "Stop the work timer and record a time log with whole elapsed minutes",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ stopTimerInput) (*sdkmcp.CallToolResult, stopTimerOutput, error) {
		log, err := tracker.Stop(ctx)
		if err != nil {
			return nil, stopTimerOutput{}, err
		}
		doc, err := asDocument(log)
		if err != nil {
			return nil, stopTimerOutput{}, err
		}
		return nil, stopTimerOutput{Minutes: log.Minutes, Log: doc}, nil
	})
}

// applyRecordsView replaces the module's view state with exactly what the
// call names. Omitted parameters clear their counterparts, including
// filter fields set by earlier calls, so each list_records result is
// described by its own arguments alone.
func applyRecordsView(m *dashboard.Module, input listRecordsInput) error {
	if input.Tab != "" {
		if err := m.SetTab(input.Tab); err != nil {
			return err
		}
	}
	m.SetSearch(input.Query)
	m.SetSort(input.Sort, direction(input.Direction))
	for field := range m.State().Filters {
		if _, ok := input.Filters[field]; !ok {
			m.SetFilter(field)
		}
	}
	for field, values := range input.Filters {
		m.SetFilter(field, values...)
	}
	return nil
}

func lookupModule(registry *dashboard.Registry, name string) (*dashboard.Module, error) {
	m, ok := registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown module %q", name)
	}
	return m, nil
}

func direction(dir string) view.Direction {
	if dir == string(view.Descending) {
		return view.Descending
	}
	return view.Ascending
}

// asDocument round-trips a value through JSON so tool outputs carry the
// same field names the HTTP API serves.
func asDocument(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
