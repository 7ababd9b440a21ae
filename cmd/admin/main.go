// Command admin performs operator tasks against the clinic store: role changes,
// linking users to patient or attendant records and issuing API tokens.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/suPer8Hu/clinic-inbox/internal/auth"
	"github.com/suPer8Hu/clinic-inbox/internal/clinic"
	"github.com/suPer8Hu/clinic-inbox/internal/config"
	"github.com/suPer8Hu/clinic-inbox/internal/db"
	"github.com/suPer8Hu/clinic-inbox/internal/models"
)

const usage = `usage: admin <command> [flags]

commands:
  upsert-user     -open-id ID [-name N] [-email E] [-phone P] [-role R]
  link-patient    -open-id ID [-cpf C] [-address A] [-preferred-channel CH]
  link-attendant  -open-id ID [-max-load N]
  issue-token     -open-id ID [-ttl 24h]
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cfg := config.Load()

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close(gdb)

	a := &app{repo: clinic.NewRepo(gdb).WithOwner(cfg.OwnerOpenID), cfg: cfg, out: os.Stdout}
	if err := a.run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

type app struct {
	repo *clinic.Repo
	cfg  config.Config
	out  io.Writer
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "upsert-user":
		return a.upsertUser(ctx, args)
	case "link-patient":
		return a.linkPatient(ctx, args)
	case "link-attendant":
		return a.linkAttendant(ctx, args)
	case "issue-token":
		return a.issueToken(ctx, args)
	}
	return fmt.Errorf("unknown command %q\n%s", cmd, usage)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (a *app) upsertUser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upsert-user", flag.ContinueOnError)
	openID := fs.String("open-id", "", "identity provider subject")
	name := fs.String("name", "", "display name")
	mail := fs.String("email", "", "email address")
	phone := fs.String("phone", "", "phone number")
	role := fs.String("role", "", "patient, attendant, manager or admin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	r := models.Role(*role)
	if r != "" && !r.Valid() {
		return fmt.Errorf("invalid role %q", *role)
	}
	u, err := a.repo.UpsertUser(ctx, clinic.UpsertUserInput{
		OpenID:      *openID,
		Name:        optional(*name),
		Email:       optional(*mail),
		Phone:       optional(*phone),
		LoginMethod: optional("admin"),
		Role:        r,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "user id=%d open_id=%s role=%s\n", u.ID, u.OpenID, u.Role)
	return nil
}

func (a *app) userByOpenID(ctx context.Context, openID string) (*models.User, error) {
	if openID == "" {
		return nil, fmt.Errorf("-open-id is required")
	}
	u, err := a.repo.GetUserByOpenID(ctx, openID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("no user with open id %q", openID)
	}
	return u, nil
}

func (a *app) linkPatient(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("link-patient", flag.ContinueOnError)
	openID := fs.String("open-id", "", "identity provider subject")
	cpf := fs.String("cpf", "", "taxpayer id")
	address := fs.String("address", "", "postal address")
	preferred := fs.String("preferred-channel", "", "preferred contact channel")
	if err := fs.Parse(args); err != nil {
		return err
	}
	u, err := a.userByOpenID(ctx, *openID)
	if err != nil {
		return err
	}
	if p, err := a.repo.GetPatientByUserID(ctx, u.ID); err != nil {
		return err
	} else if p != nil {
		fmt.Fprintf(a.out, "patient id=%d already linked to user id=%d\n", p.ID, u.ID)
		return nil
	}
	p := &models.Patient{
		UserID:           u.ID,
		CPF:              optional(*cpf),
		Address:          optional(*address),
		PreferredChannel: optional(*preferred),
	}
	if err := a.repo.CreatePatient(ctx, p); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "patient id=%d user id=%d\n", p.ID, u.ID)
	return nil
}

func (a *app) linkAttendant(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("link-attendant", flag.ContinueOnError)
	openID := fs.String("open-id", "", "identity provider subject")
	maxLoad := fs.Int("max-load", 5, "concurrent conversation capacity")
	if err := fs.Parse(args); err != nil {
		return err
	}
	u, err := a.userByOpenID(ctx, *openID)
	if err != nil {
		return err
	}
	if att, err := a.repo.GetAttendantByUserID(ctx, u.ID); err != nil {
		return err
	} else if att != nil {
		fmt.Fprintf(a.out, "attendant id=%d already linked to user id=%d\n", att.ID, u.ID)
		return nil
	}
	att := &models.Attendant{UserID: u.ID, MaxLoad: *maxLoad}
	if err := a.repo.CreateAttendant(ctx, att); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "attendant id=%d user id=%d\n", att.ID, u.ID)
	return nil
}

func (a *app) issueToken(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("issue-token", flag.ContinueOnError)
	openID := fs.String("open-id", "", "identity provider subject")
	ttl := fs.Duration("ttl", a.cfg.JWTTTL, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	u, err := a.userByOpenID(ctx, *openID)
	if err != nil {
		return err
	}
	if *ttl <= 0 {
		*ttl = 24 * time.Hour
	}
	tok, err := auth.SignJWT(u.ID, a.cfg.JWTSecret, *ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, tok)
	return nil
}
