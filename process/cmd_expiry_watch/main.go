package main

import (
	"flag"
	"log"
	"os"

	"fwplanner/process/expiryscan"
)

func main() {
	dir := flag.String("dir", os.Getenv("SCAN_DIR"), "directory with label photos")
	watch := flag.Bool("watch", false, "keep watching the directory for new photos")
	workers := flag.Int("workers", 2, "parallel OCR workers")
	dry := flag.Bool("dry", false, "print proposed updates without writing")
	allowLow := flag.Bool("allow-low", false, "accept dates that are not keyword-anchored")
	flag.Parse()

	if *dir == "" {
		log.Fatal("no directory: pass -dir or set SCAN_DIR")
	}
	opts := expiryscan.Options{Dry: *dry, AllowLow: *allowLow, Workers: *workers}
	if *watch {
		if err := expiryscan.Watch(*dir, opts); err != nil {
			log.Fatalf("watch: %v", err)
		}
		return
	}
	if err := expiryscan.Run(*dir, opts); err != nil {
		log.Fatalf("scan: %v", err)
	}
}
