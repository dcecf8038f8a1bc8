package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/SatuPadu/fses-client/client"
)

func (cli *commandLine) listStudents(page int, search string) error {
	if err := cli.guardPath("/students"); err != nil {
		return err
	}
	opts := client.ListOptions{Page: page}
	if search != "" {
		opts.Filters = map[string]string{"search": search}
	}
	students, pg, err := cli.api.GetStudents(context.Background(), opts)
	if err != nil {
		return err
	}
	for _, s := range students {
		fmt.Fprintf(cli.out, "%-6d %-14s %-30s %s\n", s.ID, s.MatricNumber, s.Name, s.EvaluationType)
	}
	if pg != nil {
		fmt.Fprintf(cli.out, "page %d/%d (%d total)\n", pg.CurrentPage, pg.LastPage, pg.Total)
	}
	return nil
}

func (cli *commandLine) listNominations(page int, status string) error {
	if err := cli.guardPath("/nominations"); err != nil {
		return err
	}
	opts := client.ListOptions{Page: page}
	if status != "" {
		opts.Filters = map[string]string{"nomination_status": status}
	}
	noms, pg, err := cli.api.GetNominations(context.Background(), opts)
	if err != nil {
		return err
	}
	for _, n := range noms {
		fmt.Fprintf(cli.out, "%-6d %-30s %-12s %s\n", n.ID, n.Student.Name, n.NominationStatus, n.AcademicYear)
	}
	if pg != nil {
		fmt.Fprintf(cli.out, "page %d/%d (%d total)\n", pg.CurrentPage, pg.LastPage, pg.Total)
	}
	return nil
}

func (cli *commandLine) lockNominations(rawIDs string) error {
	if err := cli.guardPath("/lock-nominations"); err != nil {
		return err
	}
	var ids []int
	for _, part := range strings.Split(rawIDs, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return errors.Errorf("invalid nomination id %q", part)
		}
		ids = append(ids, id)
	}
	if err := cli.api.LockNominations(context.Background(), ids); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Locked %d nomination(s).\n", len(ids))
	return nil
}

func (cli *commandLine) showDashboard() error {
	if err := cli.guardPath("/"); err != nil {
		return err
	}
	endpoint, data, err := cli.api.GetDashboardForRoles(context.Background(), cli.checker.RoleNames())
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "dashboard (%s):\n%s\n", endpoint, data)
	return nil
}

func (cli *commandLine) importStudents(path string) error {
	if err := cli.guardPath("/import"); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening file")
	}
	defer f.Close()

	ctx := context.Background()
	upload, err := cli.api.UploadImport(ctx, filepath.Base(path), f)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Upload accepted, import %s\n", upload.ImportID)

	var last client.ImportStatus
	err = cli.api.StreamImportProgress(ctx, upload.ImportID, func(st client.ImportStatus) {
		last = st
		fmt.Fprintf(cli.out, "  %s: %s\n", st.Status, st.Message)
	})
	if err != nil {
		return err
	}
	if last.Status == client.ImportFailed {
		return errors.New("import failed")
	}
	for _, rowErr := range last.Errors {
		fmt.Fprintf(cli.out, "  row %d: %s\n", rowErr.Row, rowErr.Error)
	}
	return nil
}
