package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Mendelone/spotoption-api-client/internal/config"
	"github.com/Mendelone/spotoption-api-client/internal/logger"
	"github.com/Mendelone/spotoption-api-client/spotoption"
)

const usage = `usage: spotoption [flags] <countries|campaigns|validate|add-customer>`

type options struct {
	configPath string
	campaign   string
	email      string
	password   string
	firstName  string
	lastName   string
	phone      string
	country    int64
	currency   string
	campaignID int64
	regIP      string
}

func main() {
	fs := pflag.NewFlagSet("spotoption", pflag.ExitOnError)
	opts := options{}
	fs.StringVar(&opts.configPath, "config", "", "optional config file")
	fs.StringVar(&opts.campaign, "type", spotoption.CampaignTypeCPA, "campaign type for the campaigns command")
	fs.StringVar(&opts.email, "email", "", "customer email")
	fs.StringVar(&opts.password, "password", "", "customer password")
	fs.StringVar(&opts.firstName, "first-name", "", "customer first name")
	fs.StringVar(&opts.lastName, "last-name", "", "customer last name")
	fs.StringVar(&opts.phone, "phone", "", "customer phone")
	fs.Int64Var(&opts.country, "country", 0, "country ID as listed by the countries command")
	fs.StringVar(&opts.currency, "currency", "USD", "account currency")
	fs.Int64Var(&opts.campaignID, "campaign-id", 0, "campaign ID")
	fs.StringVar(&opts.regIP, "reg-ip", "", "registration IP address")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, usage)
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	client := spotoption.NewClient(cfg.SpotOption.URL, cfg.SpotOption.Username, cfg.SpotOption.Password,
		spotoption.WithTimeout(cfg.SpotOption.Timeout),
		spotoption.WithLogger(logr),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, client, fs.Arg(0), opts, os.Stdout); err != nil {
		logr.Error("command failed",
			zap.String("command", fs.Arg(0)),
			zap.String("code", spotoption.ErrorCode(err)),
			zap.Error(err),
		)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, client spotoption.Client, command string, opts options, out io.Writer) error {
	var (
		result interface{}
		err    error
	)
	switch command {
	case "countries":
		result, err = client.GetCountries(ctx)
	case "campaigns":
		result, err = client.GetCampaigns(ctx, &spotoption.GetCampaignsRequest{Type: opts.campaign})
	case "validate":
		result, err = client.ValidateCustomer(ctx, &spotoption.ValidateCustomerRequest{
			Email:    opts.email,
			Password: opts.password,
		})
	case "add-customer":
		result, err = client.AddCustomer(ctx, &spotoption.AddCustomerRequest{
			FirstName:             opts.firstName,
			LastName:              opts.lastName,
			Email:                 opts.email,
			Phone:                 opts.phone,
			Country:               opts.country,
			Password:              opts.password,
			Currency:              opts.currency,
			CampaignID:            opts.campaignID,
			RegistrationIPAddress: opts.regIP,
		})
	default:
		return fmt.Errorf("unknown command %q", command)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
