package expiryscan

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fwplanner/models"
	"fwplanner/pkg/expiry"
)

// Options controls a scan run. AllowLow accepts dates that were recovered
// without a keyword anchor; by default only keyword-anchored (high
// confidence) dates are written back.
type Options struct {
	Dry      bool
	AllowLow bool
	Workers  int
}

func mustDBFromEnv() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in env")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	return gdb
}

// Run OCRs every label photo in dir once and updates matching inventory
// rows with the extracted expiry dates.
func Run(dir string, opts Options) error {
	gdb := mustDBFromEnv()
	files := listImageFiles(dir)
	if len(files) == 0 {
		log.Printf("no label photos in %s", dir)
		return nil
	}
	runWorkerPool(gdb, dir, opts, files, nil)
	return nil
}

// Watch keeps watching dir and processes label photos as they appear.
// Events are debounced so half-written files are not picked up.
func Watch(dir string, opts Options) error {
	gdb := mustDBFromEnv()
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	log.Printf("Watching %s (debounced) ...", dir)

	fileCh := make(chan string, 256)
	go func() {
		pending := map[string]time.Time{}
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					close(fileCh)
					return
				}
				if ev.Op&fsnotify.Create == fsnotify.Create {
					name := filepath.Base(ev.Name)
					if !isSupportedExt(name) {
						continue
					}
					pending[name] = time.Now()
				}
			case <-ticker.C:
				now := time.Now()
				for name, t := range pending {
					if now.Sub(t) > 300*time.Millisecond { // stable
						fileCh <- name
						delete(pending, name)
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					close(fileCh)
					return
				}
				log.Printf("watch error: %v", err)
			}
		}
	}()

	go runWorkerPool(gdb, dir, opts, nil, fileCh)
	// block forever (Ctrl+C to exit)
	select {}
}

func runWorkerPool(gdb *gorm.DB, dir string, opts Options, initial []string, extra <-chan string) {
	workers := opts.Workers
	if workers <= 0 {
		workers = 2
	}
	fileCh := make(chan string, 1024)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range fileCh {
				processSingleFile(gdb, dir, name, opts)
			}
		}()
	}
	for _, name := range initial {
		fileCh <- name
	}
	if extra != nil {
		for name := range extra {
			fileCh <- name
		}
	}
	close(fileCh)
	wg.Wait()
}

// processSingleFile OCRs one label photo and writes the expiry date onto the
// inventory item whose name matches the file stem.
func processSingleFile(gdb *gorm.DB, dir, name string, opts Options) {
	full := filepath.Join(dir, name)
	b, err := os.ReadFile(full)
	if err != nil {
		log.Printf("read %s: %v", name, err)
		return
	}
	res, err := expiry.ExtractFromImage(b, expiry.TesseractRecognizer{})
	if err != nil {
		log.Printf("scan error %s: %v", name, err)
		return
	}
	if !res.Success || res.Date == nil {
		log.Printf("scan skipped %s: no date (confidence=%s)", name, res.Confidence)
		return
	}
	if res.Confidence != expiry.ConfidenceHigh && !opts.AllowLow {
		log.Printf("scan skipped %s: date not keyword-anchored", name)
		return
	}

	itemName := itemNameFromFile(name)
	var item models.InventoryItem
	if err := gdb.Where("LOWER(name) = LOWER(?)", itemName).Order("id").First(&item).Error; err != nil {
		log.Printf("no inventory item named %q for %s", itemName, name)
		return
	}

	if opts.Dry {
		fmt.Printf("DRY: would set expiry of item id=%d name=%s to %s (confidence=%s)\n",
			item.ID, item.Name, res.Date.Format("2006-01-02"), res.Confidence)
		return
	}
	item.ExpiryDate = res.Date
	if err := gdb.Save(&item).Error; err != nil {
		log.Printf("failed update item %s: %v", item.Name, err)
		return
	}
	fmt.Printf("updated item id=%d name=%s expiry=%s\n", item.ID, item.Name, res.Date.Format("2006-01-02"))
}

// itemNameFromFile maps "greek_yogurt-2.jpg" to "greek yogurt": strip the
// extension, turn separators into spaces, drop a trailing counter token.
func itemNameFromFile(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	stem = strings.NewReplacer("_", " ", "-", " ").Replace(stem)
	fields := strings.Fields(stem)
	if len(fields) > 1 && isAllDigits(fields[len(fields)-1]) {
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func listImageFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !isSupportedExt(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func isSupportedExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return true
	}
	return false
}
