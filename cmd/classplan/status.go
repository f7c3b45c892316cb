// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

// ServerStatus holds the probed state of a running server.
type ServerStatus struct {
	Addr  string `json:"addr"`
	Alive bool   `json:"alive"`
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// statusConfig holds configuration for the status command.
type statusConfig struct {
	metricsAddr string
	jsonOutput  bool
}

const defaultStatusMetricsAddr = "127.0.0.1:9090"

// NewStatusCmd creates the status subcommand.
func NewStatusCmd() *cobra.Command {
	cfg := &statusConfig{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show status of a running ClassPlan server",
		Long:  `Probe the health endpoints of a running server and report liveness and readiness.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.metricsAddr, "metrics-addr", defaultStatusMetricsAddr, "metrics/health address of the running server")
	cmd.Flags().BoolVar(&cfg.jsonOutput, "json", false, "output status as JSON")

	return cmd
}

func runStatus(cmd *cobra.Command, cfg *statusConfig) error {
	status := probeServer(cfg.metricsAddr)

	if cfg.jsonOutput {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	switch {
	case !status.Alive:
		cmd.Printf("server at %s: not running (%s)\n", status.Addr, status.Error)
	case !status.Ready:
		cmd.Printf("server at %s: alive, not ready\n", status.Addr)
	default:
		cmd.Printf("server at %s: alive, ready\n", status.Addr)
	}
	return nil
}

func probeServer(addr string) ServerStatus {
	status := ServerStatus{Addr: addr}
	client := &http.Client{Timeout: 2 * time.Second}

	resp, err := client.Get(fmt.Sprintf("http://%s/healthz/liveness", addr))
	if err != nil {
		status.Error = err.Error()
		return status
	}
	_ = resp.Body.Close()
	status.Alive = resp.StatusCode == http.StatusOK

	resp, err = client.Get(fmt.Sprintf("http://%s/healthz/readiness", addr))
	if err != nil {
		status.Error = err.Error()
		return status
	}
	_ = resp.Body.Close()
	status.Ready = resp.StatusCode == http.StatusOK

	return status
}
