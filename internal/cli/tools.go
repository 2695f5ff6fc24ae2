package cli

import (
	"context"
	"fmt"

	"mymyunsw/internal/lookup"
	"mymyunsw/internal/platform/postgres"
	"mymyunsw/pkg/domain"
)

// Q2 looks up a subject by code.
func Q2() Tool {
	return Tool{
		Name:    "q2",
		Short:   "Subject query",
		Usage:   "Usage: q2 <SubjectCode>",
		MinArgs: 1,
		MaxArgs: 1,
		Run: func(ctx context.Context, env *Env, args []string) error {
			subject := domain.ParseSubjectCode(args[0])
			return env.withSession(ctx, func(ctx context.Context, s *postgres.Session) error {
				return env.query(ctx, s, Request{Tool: "q2", Subject: subject})
			})
		},
	}
}

// Q3 runs the per-student query for a zID.
func Q3() Tool {
	return Tool{
		Name:    "q3",
		Short:   "Student query",
		Usage:   "Usage: q3 <zID>",
		MinArgs: 1,
		MaxArgs: 1,
		Run: func(ctx context.Context, env *Env, args []string) error {
			zid, err := domain.ParseZID(args[0])
			if err != nil {
				return err
			}
			plan := lookup.ResolveOptionalChain(zid, "", "")
			return env.withSession(ctx, func(ctx context.Context, s *postgres.Session) error {
				res, err := env.resolve(ctx, s, plan)
				if err != nil {
					return err
				}
				return env.query(ctx, s, Request{Tool: "q3", Lookup: res})
			})
		},
	}
}

// Q4 runs the filter query.
func Q4() Tool {
	return Tool{
		Name:    "q4",
		Short:   "Filter query",
		Usage:   "Usage: q4 <filter_expr>",
		MinArgs: 1,
		MaxArgs: 1,
		Run: func(ctx context.Context, env *Env, args []string) error {
			filter := domain.ParseFilterExpr(args[0])
			return env.withSession(ctx, func(ctx context.Context, s *postgres.Session) error {
				return env.query(ctx, s, Request{Tool: "q4", Filter: filter})
			})
		},
	}
}

// Q5 resolves a zID and optional program and stream codes before running the
// progression query. argv0 is echoed in the usage line the way the tool was
// invoked.
func Q5(argv0 string) Tool {
	return Tool{
		Name:    "q5",
		Short:   "Progression query",
		Usage:   fmt.Sprintf("Usage: %s zID [Program Stream]", argv0),
		MinArgs: 1,
		MaxArgs: 3,
		Run: func(ctx context.Context, env *Env, args []string) error {
			zid, err := domain.ParseZID(args[0])
			if err != nil {
				return err
			}
			var (
				program domain.ProgramCode
				stream  domain.StreamCode
			)
			if len(args) >= 2 {
				program = domain.ParseProgramCode(args[1])
			}
			if len(args) >= 3 {
				stream = domain.ParseStreamCode(args[2])
			}
			plan := lookup.ResolveOptionalChain(zid, program, stream)

			return env.withSession(ctx, func(ctx context.Context, s *postgres.Session) error {
				res, err := env.resolve(ctx, s, plan)
				if err != nil {
					return err
				}
				return env.query(ctx, s, Request{Tool: "q5", Lookup: res})
			})
		},
	}
}
