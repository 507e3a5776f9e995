package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gbanking/gbanking/internal/auth"
	"github.com/gbanking/gbanking/internal/avatar"
	"github.com/gbanking/gbanking/internal/config"
	"github.com/gbanking/gbanking/internal/export"
	"github.com/gbanking/gbanking/internal/ledger"
	"github.com/gbanking/gbanking/internal/models"
	"github.com/gbanking/gbanking/internal/session"
)

// app is the interactive terminal front end. It owns no banking state
// beyond the logged-in user name; balances and history always come from the
// ledger service.
type app struct {
	in     *bufio.Scanner
	out    io.Writer
	auth   *auth.Service
	ledger *ledger.Service
	idle   session.IdlePolicy
	cfg    *config.Config

	user         string
	lastActivity time.Time
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *app) readLine(prompt string) (string, bool) {
	a.printf("%s", prompt)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func promptYesNo(in *bufio.Scanner, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	if !in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(in.Text()))
	return answer == "y" || answer == "yes"
}

func (a *app) run() error {
	a.printf("Welcome to GBanking\n")
	for {
		choice, ok := a.readLine("\n[1] Login  [2] Register  [q] Quit\n> ")
		if !ok {
			return nil
		}
		switch choice {
		case "1":
			a.login()
		case "2":
			a.register()
		case "q", "quit", "exit":
			return nil
		default:
			a.printf("Unknown choice %q\n", choice)
		}
	}
}

func (a *app) register() {
	name, ok := a.readLine("Full name: ")
	if !ok {
		return
	}
	pin, ok := a.readLine("Set 4-digit PIN: ")
	if !ok {
		return
	}

	normalized, err := a.auth.Register(name, pin)
	if err != nil {
		a.printf("Registration failed: %v\n", err)
		return
	}

	avatarDir := filepath.Join(a.cfg.Data.Dir, "avatars")
	if path, err := avatar.Generate(avatarDir, normalized); err == nil {
		a.printf("Avatar saved to %s\n", path)
	}
	a.printf("Account %q registered. You can log in now.\n", normalized)
}

func (a *app) login() {
	name, ok := a.readLine("Name: ")
	if !ok {
		return
	}
	pin, ok := a.readLine("PIN: ")
	if !ok {
		return
	}

	normalized, err := a.auth.Login(name, pin)
	if err != nil {
		var locked *auth.LockedOutError
		if errors.As(err, &locked) {
			a.printf("Too many failed attempts. Try again in ~%d min.\n",
				int(locked.Remaining(time.Now()).Minutes())+1)
			return
		}
		// NotFound and wrong PIN read the same to the user.
		a.printf("Invalid name or PIN.\n")
		return
	}

	a.user = normalized
	a.lastActivity = time.Now()
	a.dashboard()
	a.user = ""
}

func (a *app) dashboard() {
	for {
		balance, err := a.ledger.Balance(a.user)
		if err != nil {
			a.printf("Error loading balance: %v\n", err)
			return
		}
		a.printf("\n%s | balance $%s\n", a.user, models.FormatMoney(balance))

		choice, ok := a.readLine("[d] Deposit  [w] Withdraw  [h] History  [e] Export  [l] Logout\n> ")
		if !ok {
			return
		}

		now := time.Now()
		if a.idle.Check(a.lastActivity, now) == session.ShouldLock {
			a.printf("No activity detected. You've been logged out for safety.\n")
			return
		}
		a.lastActivity = now

		switch choice {
		case "d":
			a.transact(models.Deposit)
		case "w":
			a.transact(models.Withdrawal)
		case "h":
			a.showHistory()
		case "e":
			a.exportStatement()
		case "l":
			return
		default:
			a.printf("Unknown choice %q\n", choice)
		}
	}
}

func (a *app) transact(typ models.TransactionType) {
	raw, ok := a.readLine("Amount: ")
	if !ok {
		return
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		a.printf("Amount must be a number.\n")
		return
	}

	category := a.pickCategory()
	note, _ := a.readLine("Note (optional): ")

	var balance decimal.Decimal
	if typ == models.Deposit {
		balance, err = a.ledger.Deposit(context.Background(), a.user, amount, category, note)
	} else {
		balance, err = a.ledger.Withdraw(context.Background(), a.user, amount, category, note)
	}
	if err != nil {
		a.printf("%s failed: %v\n", typ, err)
		return
	}
	a.printf("$%s %s successful. New balance: $%s\n",
		models.FormatMoney(models.ToMoney(amount)), strings.ToLower(string(typ)), models.FormatMoney(balance))
}

func (a *app) pickCategory() models.Category {
	for i, c := range models.Categories {
		a.printf("[%d] %s  ", i+1, c)
	}
	raw, ok := a.readLine("\nCategory (default General): ")
	if !ok || raw == "" {
		return models.CategoryGeneral
	}
	if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= len(models.Categories) {
		return models.Categories[n-1]
	}
	return models.ParseCategory(raw)
}

func (a *app) historyFilter() ledger.Filter {
	var f ledger.Filter
	raw, _ := a.readLine("Filter type [all/deposit/withdrawal] (default all): ")
	switch strings.ToLower(raw) {
	case "deposit", "d":
		f.Type = models.Deposit
	case "withdrawal", "w":
		f.Type = models.Withdrawal
	}
	raw, _ = a.readLine("Filter category (default all): ")
	if raw != "" && !strings.EqualFold(raw, "all") {
		f.Category = models.ParseCategory(raw)
	}
	return f
}

func (a *app) showHistory() {
	rows, err := a.ledger.History(a.user, a.historyFilter())
	if err != nil {
		a.printf("Error loading history: %v\n", err)
		return
	}
	if len(rows) == 0 {
		a.printf("No transactions.\n")
		return
	}
	for _, r := range rows {
		a.printf("%s | %-10s | $%s | Balance: $%s | %s | %s\n",
			r.Timestamp.Format(models.TimestampLayout), r.Type,
			models.FormatMoney(r.Amount), models.FormatMoney(r.BalanceAfter),
			r.Category, r.Note)
	}
}

func (a *app) exportStatement() {
	defaultPath := fmt.Sprintf("%s_statement.csv", strings.ReplaceAll(a.user, " ", "_"))
	path, ok := a.readLine(fmt.Sprintf("Export path (default %s): ", defaultPath))
	if !ok {
		return
	}
	if path == "" {
		path = defaultPath
	}

	rows, err := a.ledger.History(a.user, ledger.Filter{})
	if err != nil {
		a.printf("Error loading history: %v\n", err)
		return
	}
	if err := export.WriteStatement(path, a.user, rows); err != nil {
		a.printf("Export failed: %v\n", err)
		return
	}
	a.printf("Statement saved to %s\n", path)
}
