package cli

import (
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/oh-yeah-zzy/PhantomHand/internal/config"
)

// connectShell establishes a gRPC connection to the running shell.
func connectShell() (*grpc.ClientConn, error) {
	info, err := config.LoadShellInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to load shell info: %w", err)
	}
	if info == nil {
		return nil, fmt.Errorf("shell not running")
	}

	addr := fmt.Sprintf("%s:%d", info.Host, info.Port)
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to shell: %w", err)
	}

	return conn, nil
}
