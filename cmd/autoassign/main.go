package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"skill-matrix/internal/app"
	"skill-matrix/internal/config"
	"skill-matrix/internal/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	employeeID := flag.String("employee", "", "only plan or apply for this employee id")
	dryRun := flag.Bool("dry-run", false, "print the plan without creating assignments (requires -employee)")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall run timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if *dryRun && strings.TrimSpace(*employeeID) == "" {
		log.Fatal("-dry-run needs -employee")
	}

	c, err := app.NewContainer(cfg, log)
	if err != nil {
		log.Fatal("failed to init container", zap.Error(err))
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Error("cleanup error", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	uc := c.Usecases.AutoAssign

	if id := strings.TrimSpace(*employeeID); id != "" {
		empID, err := uuid.Parse(id)
		if err != nil {
			log.Fatal("invalid employee id", zap.String("employee", id), zap.Error(err))
		}
		if *dryRun {
			plan, err := uc.PlanAutoAssignment(ctx, empID)
			if err != nil {
				log.Fatal("plan failed", zap.Error(err))
			}
			for _, it := range plan.ToCreate {
				log.Info("would assign",
					zap.String("skill", it.SkillName),
					zap.Int("gap", it.Gap),
					zap.String("course", it.Course.Title),
					zap.String("course_id", it.Course.ID.String()),
				)
			}
			for _, u := range plan.Uncovered {
				log.Info("no course available", zap.String("skill", u.SkillName))
			}
			return
		}
		res, err := uc.ApplyAutoAssignment(ctx, empID)
		if err != nil {
			log.Fatal("auto-assign failed", zap.Error(err))
		}
		log.Info("auto-assign done",
			zap.String("employee", empID.String()),
			zap.Int("created", len(res.Created)),
			zap.Int("uncovered", len(res.Uncovered)),
		)
		return
	}

	sum, err := uc.AutoAssignAll(ctx)
	if err != nil {
		log.Fatal("bulk auto-assign failed", zap.Error(err))
	}
	for _, f := range sum.Failures {
		log.Warn("employee skipped", zap.String("employee", f.EmployeeID.String()), zap.Error(f.Err))
	}
	log.Info("bulk auto-assign done",
		zap.Int("employees", sum.Employees),
		zap.Int("created", sum.Created),
		zap.Int("failures", len(sum.Failures)),
	)
}
