// Buyer places an order through the broker API and asks before overriding
// an insufficient funds rejection.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/chucky-1/fdbroker/internal/buyflow"
	"github.com/chucky-1/fdbroker/internal/client"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type config struct {
	URL      string `env:"BUYER_URL" envDefault:"http://localhost:3000"`
	Stock    string `env:"BUYER_STOCK" envDefault:"acme"`
	Quantity int64  `env:"BUYER_QUANTITY" envDefault:"1"`
	Username string `env:"BUYER_USERNAME"`
	Password string `env:"BUYER_PASSWORD"`
}

func main() {
	_ = godotenv.Load()
	cfg := new(config)
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("%v", err)
	}
	ctx := context.Background()
	c := client.NewClient(cfg.URL, nil)

	if err := c.Reset(ctx); err != nil {
		log.Fatalf("reset: %v", err)
	}
	if cfg.Username != "" {
		if err := c.LinkAccount(ctx, cfg.Username, cfg.Password); err != nil {
			log.Fatalf("link account: %v", err)
		}
		fmt.Println("Account linked.")
	}

	stocks, err := c.Stocks(ctx)
	if err != nil {
		log.Fatalf("stocks: %v", err)
	}
	flow := buyflow.New(c)
	for _, stock := range stocks {
		if stock.Symbol == cfg.Stock {
			flow.Open(stock)
			fmt.Printf("Buy %s Stock at $%s\n", stock.Name, stock.Price.StringFixed(2))
		}
	}
	if !flow.IsOpen() {
		log.Fatalf("unknown stock %q", cfg.Stock)
	}
	flow.SetQuantity(cfg.Quantity)
	fmt.Printf("Total: $%s\n", flow.Total().StringFixed(2))

	in := bufio.NewReader(os.Stdin)
	for flow.IsOpen() && flow.CanConfirm() {
		if err = flow.Confirm(ctx); err != nil {
			log.Fatalf("place order: %v", err)
		}
		switch flow.State() {
		case buyflow.StateInsufficientFunds:
			fmt.Print("Insufficient funds in your checking account. Place the order anyway? [y/N] ")
			answer, _ := in.ReadString('\n')
			if !strings.EqualFold(strings.TrimSpace(answer), "y") {
				return
			}
		case buyflow.StateSuccess:
			fmt.Println(flow.Message())
			_ = flow.Confirm(ctx)
		}
	}
}
