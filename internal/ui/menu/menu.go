// File: internal/ui/menu/menu.go
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"bucketctl/internal/service"
	"bucketctl/internal/ui/prompt"
	"bucketctl/pkg/formatter"
)

// Lifecycle is the part of the storage service the menu drives
type Lifecycle interface {
	ListBucketNames(ctx context.Context) ([]string, error)
	BucketExists(ctx context.Context, name string) (bool, error)
	ListObjectKeys(ctx context.Context, bucketName string) ([]string, error)
	CreateNamedBucket(ctx context.Context, first, last, region string) (string, error)
	Upload(ctx context.Context, bucketName, objectName string) (string, error)
	DeleteObject(ctx context.Context, bucketName, objectKey string) error
	DeleteBucket(ctx context.Context, bucketName string) error
	CopyObject(ctx context.Context, srcBucket, srcKey, destBucket, destKey string) error
	Download(ctx context.Context, bucketName, objectKey string) (string, error)
}

type Options struct {
	// Shown above the choices, e.g. "AWS S3 Menu"
	Title string
	// Named in failure messages so the operator knows where details went
	SinkPath string
	Now      func() time.Time
}

type Menu struct {
	svc       Lifecycle
	prompter  prompt.Prompter
	out       io.Writer
	formatter *formatter.StorageFormatter
	opts      Options
}

func New(svc Lifecycle, prompter prompt.Prompter, out io.Writer, opts Options) *Menu {
	if opts.Title == "" {
		opts.Title = "S3 Menu"
	}
	if opts.SinkPath == "" {
		opts.SinkPath = "error.log"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Menu{
		svc:       svc,
		prompter:  prompter,
		out:       out,
		formatter: formatter.NewStorageFormatter(),
		opts:      opts,
	}
}

var choices = []string{
	"Create Bucket",
	"Upload Object",
	"Delete Object",
	"Delete Bucket",
	"Copy Object",
	"Download Object",
	"Exit",
}

// Runs until the operator chooses Exit, input ends, or ctx is cancelled.
// Operation failures never end the loop.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.printMenu()
		choice, err := m.prompter.Ask("Enter choice: ")
		if errors.Is(err, io.EOF) {
			m.exit()
			return nil
		}
		if err != nil {
			return err
		}
		// Cancelled while waiting on input; nothing is dispatched
		if err := ctx.Err(); err != nil {
			return err
		}

		switch choice {
		case "1":
			err = m.createBucket(ctx)
		case "2":
			err = m.uploadObject(ctx)
		case "3":
			err = m.deleteObject(ctx)
		case "4":
			err = m.deleteBucket(ctx)
		case "5":
			err = m.copyObject(ctx)
		case "6":
			err = m.downloadObject(ctx)
		case "7":
			m.exit()
			return nil
		default:
			m.println("Invalid choice. Please choose a number one through seven.")
		}

		if errors.Is(err, io.EOF) {
			m.exit()
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) printMenu() {
	m.println("\n" + formatter.FormatSectionTitle(m.opts.Title))
	for i, c := range choices {
		m.printf("%d. %s\n", i+1, c)
	}
}

func (m *Menu) exit() {
	m.println("Exiting program.")
	m.printf("The date and time is %s\n", m.opts.Now().Format("2006-01-02 15:04:05.000000"))
}

// Each flow returns only prompt errors; operation outcomes are printed

func (m *Menu) createBucket(ctx context.Context) error {
	first, err := m.prompter.Ask("Enter your first name: ")
	if err != nil {
		return err
	}
	last, err := m.prompter.Ask("Enter your last name: ")
	if err != nil {
		return err
	}
	if first == "" && last == "" {
		m.println(formatter.Warning("Please enter a name!"))
		return nil
	}

	name, err := m.svc.CreateNamedBucket(ctx, first, last, "")
	if err != nil {
		if errors.Is(err, service.ErrNameTaken) {
			m.println(formatter.Warning("Bucket name already exists!"))
		}
		if service.OutcomeOf(err) == service.OutcomeRejected {
			m.println(formatter.Warning("Name not valid!"))
			return nil
		}
		m.explain(err, "create the bucket")
		return nil
	}

	m.println(formatter.Success(fmt.Sprintf("Bucket %s has been created!", name)))
	return nil
}

func (m *Menu) uploadObject(ctx context.Context) error {
	if !m.listBuckets(ctx) {
		return nil
	}
	bucket, err := m.prompter.Ask("Select a bucket and enter the name: ")
	if err != nil {
		return err
	}

	key, err := m.svc.Upload(ctx, bucket, "")
	if err != nil {
		m.explain(err, "upload the object")
		return nil
	}

	m.println(formatter.Success(fmt.Sprintf("The %s object has been uploaded to the %s bucket!", key, bucket)))
	return nil
}

func (m *Menu) deleteObject(ctx context.Context) error {
	bucket, ok, err := m.chooseBucket(ctx, "Select a bucket and enter the name: ", "Bucket not in range!")
	if err != nil || !ok {
		return err
	}
	if _, ok := m.listObjects(ctx, bucket); !ok {
		return nil
	}

	key, err := m.prompter.Ask("Enter object name to delete: ")
	if err != nil {
		return err
	}

	if err := m.svc.DeleteObject(ctx, bucket, key); err != nil {
		m.explain(err, "delete the object")
		return nil
	}

	m.println(formatter.Success(fmt.Sprintf("The %s object was deleted from the %s bucket!", key, bucket)))
	return nil
}

func (m *Menu) deleteBucket(ctx context.Context) error {
	if !m.listBuckets(ctx) {
		return nil
	}
	bucket, err := m.prompter.Ask("Enter name of desired bucket to delete: ")
	if err != nil {
		return err
	}

	if err := m.svc.DeleteBucket(ctx, bucket); err != nil {
		m.explain(err, "delete the bucket")
		return nil
	}

	m.println(formatter.Success(fmt.Sprintf("The %s bucket has been deleted!", bucket)))
	return nil
}

func (m *Menu) copyObject(ctx context.Context) error {
	src, ok, err := m.chooseBucket(ctx, "Enter source bucket name: ", "Source bucket not in range!")
	if err != nil || !ok {
		return err
	}
	keys, ok := m.listObjects(ctx, src)
	if !ok {
		return nil
	}

	key, err := m.prompter.Ask("Enter object name to copy: ")
	if err != nil {
		return err
	}
	// Checked against the listing just shown, before asking for a destination
	if !slices.Contains(keys, key) {
		m.println(formatter.Warning("Object name out of range!"))
		return nil
	}

	if !m.listBuckets(ctx) {
		return nil
	}
	dest, err := m.prompter.Ask("Enter destination bucket name: ")
	if err != nil {
		return err
	}

	if err := m.svc.CopyObject(ctx, src, key, dest, ""); err != nil {
		if errors.Is(err, service.ErrBucketMissing) {
			m.println(formatter.Warning("Destination bucket not in range!"))
			return nil
		}
		m.explain(err, "copy the object")
		return nil
	}

	m.println(formatter.Success(fmt.Sprintf("%s was copied from %s to %s!", key, src, dest)))
	return nil
}

func (m *Menu) downloadObject(ctx context.Context) error {
	bucket, ok, err := m.chooseBucket(ctx, "Select a bucket and enter the name: ", "Bucket not in range!")
	if err != nil || !ok {
		return err
	}
	if _, ok := m.listObjects(ctx, bucket); !ok {
		return nil
	}

	key, err := m.prompter.Ask("Enter object name to download: ")
	if err != nil {
		return err
	}

	target, err := m.svc.Download(ctx, bucket, key)
	if err != nil {
		m.explain(err, "download the object")
		return nil
	}

	m.println(formatter.Success(fmt.Sprintf("The %s object has been downloaded to the local environment as %s!", key, target)))
	return nil
}

// Prints the bucket list, then asks for a bucket that must be in it
func (m *Menu) chooseBucket(ctx context.Context, question, missing string) (string, bool, error) {
	if !m.listBuckets(ctx) {
		return "", false, nil
	}
	bucket, err := m.prompter.Ask(question)
	if err != nil {
		return "", false, err
	}

	exists, err := m.svc.BucketExists(ctx, bucket)
	if err != nil {
		m.explain(err, "read the bucket list")
		return "", false, nil
	}
	if !exists {
		m.println(formatter.Warning(missing))
		return "", false, nil
	}
	return bucket, true, nil
}

func (m *Menu) listBuckets(ctx context.Context) bool {
	names, err := m.svc.ListBucketNames(ctx)
	if err != nil {
		m.explain(err, "read the bucket list")
		return false
	}
	m.println(m.formatter.FormatNameList("Bucket List", names))
	return true
}

// Prints the bucket's object keys; an empty bucket or failed lookup ends the flow
func (m *Menu) listObjects(ctx context.Context, bucket string) ([]string, bool) {
	keys, err := m.svc.ListObjectKeys(ctx, bucket)
	if err != nil {
		m.explain(err, "list the objects")
		return nil, false
	}
	if len(keys) == 0 {
		m.println(formatter.Warning(m.formatter.FormatEmptyBucket(bucket)))
		return nil, false
	}
	m.println(m.formatter.FormatNameList("Object List", keys))
	return keys, true
}

// Turns an operation error into the operator-facing message
func (m *Menu) explain(err error, action string) {
	switch {
	case errors.Is(err, service.ErrBucketMissing):
		m.println(formatter.Warning("Bucket not in range!"))
	case errors.Is(err, service.ErrObjectMissing):
		m.println(formatter.Warning("Object name out of range!"))
	case errors.Is(err, service.ErrBucketInUse):
		m.println(formatter.Warning("Bucket should be empty before deleting!"))
	case errors.Is(err, service.ErrSameBucket):
		m.println(formatter.Warning("Cannot copy to the same bucket!"))
	case service.OutcomeOf(err) == service.OutcomeNotApplicable:
		m.println(formatter.Warning(err.Error()))
	default:
		m.println(formatter.Failure(fmt.Sprintf("Could not %s. Details were written to %s.", action, m.opts.SinkPath)))
	}
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}
