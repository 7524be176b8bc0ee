// petsctl es un CLI chico para la API de mascotas.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"petpulse/internal/client"
	"petpulse/internal/platform/httpclient"

	"github.com/fatih/color"
)

const defaultAddr = "http://localhost:8080"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	defAddr := os.Getenv("PETSCTL_ADDR")
	if defAddr == "" {
		defAddr = defaultAddr
	}

	global := flag.NewFlagSet("petsctl", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	addr := global.String("addr", defAddr, "API base URL")
	if err := global.Parse(args); err != nil {
		printUsage(stderr)
		return 2
	}
	args = global.Args()

	if len(args) < 1 {
		printUsage(stderr)
		return 2
	}

	c, err := client.New(*addr, 10*time.Second)
	if err != nil {
		color.New(color.FgRed).Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "list":
		err = cmdList(ctx, c, stdout)
	case "get":
		err = cmdGet(ctx, c, rest, stdout)
	case "create":
		err = cmdCreate(ctx, c, rest, stdout)
	case "update":
		err = cmdUpdate(ctx, c, rest, stdout)
	case "delete":
		err = cmdDelete(ctx, c, rest, stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", cmd)
		printUsage(stderr)
		return 2
	}

	if err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	yellow := color.New(color.FgYellow)

	fmt.Fprintln(w, "Usage: petsctl [-addr URL] <command> [args]")
	fmt.Fprintln(w)
	yellow.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  list                                   List all pets")
	fmt.Fprintln(w, "  get <id>                               Show a pet")
	fmt.Fprintln(w, "  create -name -species -age -owner      Create a pet")
	fmt.Fprintln(w, "  update <id> [-name -species -age -owner]  Change only the given fields")
	fmt.Fprintln(w, "  delete <id>                            Delete a pet")
	fmt.Fprintln(w)
	yellow.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  PETSCTL_ADDR    API base URL (default: %s)\n", defaultAddr)
}

func printError(w io.Writer, err error) {
	red := color.New(color.FgRed)

	var he *httpclient.HTTPError
	if !errors.As(err, &he) || he.Message == "" {
		red.Fprintf(w, "Error: %v\n", err)
		return
	}

	red.Fprintf(w, "Error (%d): %s\n", he.StatusCode, he.Message)

	fields := make([]string, 0, len(he.Errors))
	for field := range he.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		for _, m := range he.Errors[field] {
			fmt.Fprintf(w, "  %s: %s\n", field, m)
		}
	}
}

func cmdList(ctx context.Context, c *client.Client, out io.Writer) error {
	items, err := c.List(ctx)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(out, "(no pets)")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSPECIES\tAGE\tOWNER\tUPDATED")
	for _, p := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n",
			p.ID, p.Name, p.Species, p.Age, p.OwnerName, p.UpdatedAt.Format("Jan 02 15:04"))
	}
	return w.Flush()
}

func cmdGet(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	p, err := c.Get(ctx, id)
	if err != nil {
		return err
	}
	printPet(out, p)
	return nil
}

func cmdCreate(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var in client.CreatePet
	fs.StringVar(&in.Name, "name", "", "pet name")
	fs.StringVar(&in.Species, "species", "", "species")
	age := fs.Int("age", 0, "age in years")
	fs.StringVar(&in.OwnerName, "owner", "", "owner name")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("usage: create -name <name> -species <species> -age <n> -owner <owner>: %w", err)
	}

	// sin -age se manda null; la API lo rechaza como requerido
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "age" {
			in.Age = age
		}
	})

	p, err := c.Create(ctx, in)
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(out, "✓ Created pet %d\n", p.ID)
	printPet(out, p)
	return nil
}

func cmdUpdate(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	name := fs.String("name", "", "pet name")
	species := fs.String("species", "", "species")
	age := fs.Int("age", 0, "age in years")
	owner := fs.String("owner", "", "owner name")
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("usage: update <id> [-name] [-species] [-age] [-owner]: %w", err)
	}

	// sólo se mandan los flags presentes
	var in client.UpdatePet
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			in.Name = name
		case "species":
			in.Species = species
		case "age":
			in.Age = age
		case "owner":
			in.OwnerName = owner
		}
	})

	p, err := c.Update(ctx, id, in)
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(out, "✓ Updated pet %d\n", p.ID)
	printPet(out, p)
	return nil
}

func cmdDelete(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	if err := c.Delete(ctx, id); err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(out, "✓ Deleted pet %d\n", id)
	return nil
}

func parseID(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, errors.New("missing pet id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid pet id %q", args[0])
	}
	return id, nil
}

func printPet(w io.Writer, p client.Pet) {
	cyan := color.New(color.FgCyan)

	cyan.Fprintf(w, "  %s\n", p.Name)
	fmt.Fprintf(w, "  ID:       %d\n", p.ID)
	fmt.Fprintf(w, "  Species:  %s\n", p.Species)
	fmt.Fprintf(w, "  Age:      %d\n", p.Age)
	fmt.Fprintf(w, "  Owner:    %s\n", p.OwnerName)
	fmt.Fprintf(w, "  Created:  %s\n", p.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "  Updated:  %s\n", p.UpdatedAt.Format(time.RFC3339))
}
