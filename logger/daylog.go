package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/astaxie/beego/logs"
	"github.com/spf13/viper"
)

// LogConfig is the beego file adapter config
type LogConfig struct {
	FilePath   string
	FileName   string `json:"filename"`
	Level      int    `json:"level"`
	Maxlines   int    `json:"maxlines"`
	Maxsize    int    `json:"maxsize"`
	Daily      bool   `json:"daily"`
	Maxdays    int    `json:"maxdays"`
	Rotate     bool   `json:"rotate"`
	Perm       string `json:"perm"`
	RotatePerm string `json:"rotateperm"`
	Color      bool
}

// DayLog writes one file per hour under {dir}/{yyyy-mm-dd}/{name}.{hour}
type DayLog struct {
	Cfg        *LogConfig
	Instance   *logs.BeeLogger
	LogName    string
	Dir        string
	CurLogName string
	CurHours   int
}

func (d *DayLog) init(v *viper.Viper, name string) bool {
	d.Cfg = &LogConfig{}
	d.Cfg.FilePath = v.GetString("daylog.filepath")
	d.Cfg.Level = logs.LevelInfo
	// rotation is handled by checkResetStatus, beego would spawn a goroutine per logger otherwise
	d.Cfg.Daily = false
	d.Cfg.Rotate = false
	d.Cfg.Perm = "0664"
	d.Cfg.RotatePerm = "0664"
	d.Dir = v.GetString("daylog.filepath")
	d.LogName = name
	d.CurHours = -1
	return d.checkResetStatus() == nil
}

func (d *DayLog) checkResetStatus() error {
	now := time.Now()
	hours := now.Hour()
	if hours == d.CurHours && d.Instance != nil {
		return nil
	}
	d.CurHours = hours
	dayDir := filepath.Join(d.Dir, now.Format("2006-01-02"))
	if err := os.MkdirAll(dayDir, 0755); err != nil {
		return err
	}
	d.CurLogName = filepath.Join(dayDir, fmt.Sprintf("%s.%d", d.LogName, hours))
	d.Cfg.FileName = d.CurLogName
	if d.Instance != nil {
		d.Instance.Reset()
	} else {
		d.Instance = logs.NewLogger()
	}
	jsonConfig, err := json.Marshal(d.Cfg)
	if err != nil {
		return err
	}
	return d.Instance.SetLogger(logs.AdapterFile, string(jsonConfig))
}

// Info writes one line, switching file on hour change
func (d *DayLog) Info(format string, v ...interface{}) {
	if d.Instance == nil {
		return
	}
	if err := d.checkResetStatus(); err != nil {
		Warnf("daylog %s reset failed: %v", d.LogName, err)
		return
	}
	d.Instance.Info(format, v...)
}

// DayLogMgr multiplexes all day logs on one writer goroutine, beego logs only
// serves a single file per async goroutine.
type DayLogMgr struct {
	LogMap     map[int]*DayLog
	MsgChannel chan *AsyncMsg
	done       chan struct{}
}

// AsyncMsg one pending line
type AsyncMsg struct {
	flag int
	msg  string
}

func (g *DayLogMgr) write(msg *AsyncMsg) {
	defer func() {
		if err := recover(); err != nil {
			Errorf("daylog write panic: %v", err)
		}
	}()
	if log, ok := g.LogMap[msg.flag]; ok {
		log.Info("%s", msg.msg)
	}
}

func (g *DayLogMgr) start() {
	defer close(g.done)
	for msg := range g.MsgChannel {
		g.write(msg)
	}
	for _, log := range g.LogMap {
		log.Instance.Flush()
		log.Instance.Close()
	}
}

var (
	// dlMu guards gDLMgr, senders hold the read lock so CloseDayLog never
	// closes the channel under a send
	dlMu   sync.RWMutex
	gDLMgr *DayLogMgr
)

const asyncChannelSize = 10000

// InitDayLog reads `daylog.name` entries shaped "flag-name", e.g. "1-view",
// files go to {daylog.filepath}/{yyyy-mm-dd}/{name}.{hour}.
// Returns false when nothing is configured. A previous manager is closed.
func InitDayLog(v *viper.Viper) bool {
	mgr := &DayLogMgr{
		LogMap:     map[int]*DayLog{},
		MsgChannel: make(chan *AsyncMsg, asyncChannelSize),
		done:       make(chan struct{}),
	}
	for _, cfg := range v.GetStringSlice("daylog.name") {
		name := strings.SplitN(cfg, "-", 2)
		if len(name) != 2 {
			Warnf("daylog entry %q ignored, want flag-name", cfg)
			continue
		}
		flag, err := strconv.Atoi(name[0])
		if err != nil {
			Warnf("daylog entry %q ignored: %v", cfg, err)
			continue
		}
		dayLog := &DayLog{}
		if dayLog.init(v, name[1]) {
			mgr.LogMap[flag] = dayLog
		} else {
			Warnf("daylog %q could not open its file", cfg)
		}
	}
	if len(mgr.LogMap) == 0 {
		return false
	}

	CloseDayLog()
	dlMu.Lock()
	gDLMgr = mgr
	dlMu.Unlock()
	go mgr.start()
	return true
}

// CloseDayLog drains pending lines and closes every file
func CloseDayLog() {
	dlMu.Lock()
	mgr := gDLMgr
	gDLMgr = nil
	if mgr != nil {
		close(mgr.MsgChannel)
	}
	dlMu.Unlock()

	if mgr != nil {
		<-mgr.done
	}
}

// DayLogEnabled reports whether flag has a configured day log
func DayLogEnabled(flag int) bool {
	dlMu.RLock()
	defer dlMu.RUnlock()
	if gDLMgr == nil {
		return false
	}
	_, ok := gDLMgr.LogMap[flag]
	return ok
}

// DayLogRecord queues one line, dropped when day logs are not initialized
// or the queue is full. Safe from any goroutine.
func DayLogRecord(flag int, format string, v ...interface{}) {
	dlMu.RLock()
	defer dlMu.RUnlock()
	mgr := gDLMgr
	if mgr == nil {
		return
	}
	if _, ok := mgr.LogMap[flag]; !ok {
		return
	}
	select {
	case mgr.MsgChannel <- &AsyncMsg{flag: flag, msg: fmt.Sprintf(format, v...)}:
	default:
		Warnf("daylog %d queue full, drop line", flag)
	}
}
