package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Cam-Smith-Games/Card-Game/internal/config"
	"github.com/Cam-Smith-Games/Card-Game/internal/constants"
)

func main() {
	addr := constants.DefaultServerAddr
	if cfg, err := config.FromEnv(); err == nil {
		addr = cfg.ServerAddress
	}
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + constants.RouteHealth)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
	os.Exit(0)
}
