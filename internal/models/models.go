package models

import (
	"fmt"
	"strconv"
	"strings"
)

// CustomFields holds operator-defined extra attributes on a record. Keys are
// free-form; nothing checks them for collisions with declared fields.
type CustomFields map[string]string

// PCStatus is the operational state of a desktop PC.
type PCStatus string

const (
	PCStatusOK     PCStatus = "OK"
	PCStatusNO     PCStatus = "NO"
	PCStatusRepair PCStatus = "Repair"
)

// HardwareStatus is the physical condition of a laptop.
type HardwareStatus string

const (
	HardwareGood            HardwareStatus = "Good"
	HardwareBatteryProblem  HardwareStatus = "Battery Problem"
	HardwarePlatformProblem HardwareStatus = "Platform Problem"
)

// ServerStatus is the availability of a server.
type ServerStatus string

const (
	ServerOnline      ServerStatus = "Online"
	ServerOffline     ServerStatus = "Offline"
	ServerMaintenance ServerStatus = "Maintenance"
)

// ValidPCStatuses is the set of status values offered for PCs.
var ValidPCStatuses = map[PCStatus]bool{
	PCStatusOK:     true,
	PCStatusNO:     true,
	PCStatusRepair: true,
}

// ValidHardwareStatuses is the set of hardware status values offered for laptops.
var ValidHardwareStatuses = map[HardwareStatus]bool{
	HardwareGood:            true,
	HardwareBatteryProblem:  true,
	HardwarePlatformProblem: true,
}

// ValidServerStatuses is the set of status values offered for servers.
var ValidServerStatuses = map[ServerStatus]bool{
	ServerOnline:      true,
	ServerOffline:     true,
	ServerMaintenance: true,
}

// ValidFloors lists the office floors PCs are placed on, in tab order.
var ValidFloors = []int{7, 6, 5}

// DefaultFloor is the floor assigned to PCs that do not carry one.
const DefaultFloor = 7

// PCInfo is a desktop PC in the inventory.
type PCInfo struct {
	ID           int64        `json:"id"`
	Department   string       `json:"department"`
	IP           string       `json:"ip"`
	PCName       string       `json:"pcName"`
	Motherboard  string       `json:"motherboard"`
	CPU          string       `json:"cpu"`
	RAM          string       `json:"ram"`
	Storage      string       `json:"storage"`
	Monitor      string       `json:"monitor"`
	OS           string       `json:"os"`
	Status       PCStatus     `json:"status"`
	Floor        int          `json:"floor"`
	CustomFields CustomFields `json:"customFields,omitempty"`
}

// LaptopInfo is a laptop in the inventory.
type LaptopInfo struct {
	ID             int64          `json:"id"`
	PCName         string         `json:"pcName"`
	Brand          string         `json:"brand"`
	Model          string         `json:"model"`
	CPU            string         `json:"cpu"`
	SerialNumber   string         `json:"serialNumber"`
	RAM            string         `json:"ram"`
	Storage        string         `json:"storage"`
	UserStatus     string         `json:"userStatus"`
	Department     string         `json:"department"`
	Date           string         `json:"date"`
	HardwareStatus HardwareStatus `json:"hardwareStatus"`
	CustomFields   CustomFields   `json:"customFields,omitempty"`
}

// ServerInfo is a server in the inventory. Department is optional.
type ServerInfo struct {
	ID           int64        `json:"id"`
	ServerID     string       `json:"serverID"`
	Brand        string       `json:"brand"`
	Model        string       `json:"model"`
	CPU          string       `json:"cpu"`
	TotalCores   int          `json:"totalCores"`
	RAM          string       `json:"ram"`
	Storage      string       `json:"storage"`
	RAID         string       `json:"raid"`
	Status       ServerStatus `json:"status"`
	Department   string       `json:"department,omitempty"`
	CustomFields CustomFields `json:"customFields,omitempty"`
}

// PeripheralLog records one service or assignment event for a mouse,
// keyboard, or SSD. The three peripheral collections share this shape.
type PeripheralLog struct {
	ID           int64  `json:"id"`
	ProductName  string `json:"productName"`
	SerialNumber string `json:"serialNumber"`
	PCName       string `json:"pcName"`
	PCUsername   string `json:"pcUsername"`
	Department   string `json:"department"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	ServicedBy   string `json:"servicedBy"`
	Comment      string `json:"comment"`
}

// DepartmentAssetSummary is one row of the department rollup. It is derived
// from the asset collections and never stored.
type DepartmentAssetSummary struct {
	ID         int    `json:"id"`
	Department string `json:"department"`
	Quantity   int    `json:"quantity"`
}

// InUse reports whether the peripheral is assigned to a machine or a user.
func (l PeripheralLog) InUse() bool {
	return l.PCName != "" || l.PCUsername != ""
}

var pcColumns = []string{"id", "department", "ip", "pcName", "motherboard", "cpu", "ram", "storage", "monitor", "os", "status", "floor"}

func (p PCInfo) RecordID() int64           { return p.ID }
func (p PCInfo) WithID(id int64) PCInfo    { p.ID = id; return p }
func (p PCInfo) DepartmentName() string    { return p.Department }
func (p PCInfo) Custom() map[string]string { return p.CustomFields }
func (PCInfo) Columns() []string           { return pcColumns }

func (p PCInfo) SearchFields() []string {
	return []string{p.PCName, p.Department, p.IP, p.CPU}
}

func (p PCInfo) Row() []string {
	return []string{
		strconv.FormatInt(p.ID, 10), p.Department, p.IP, p.PCName, p.Motherboard,
		p.CPU, p.RAM, p.Storage, p.Monitor, p.OS, string(p.Status), strconv.Itoa(p.Floor),
	}
}

// Assign returns a copy of p with the named fields replaced. Every other
// name, including "id", becomes a custom field; the custom fields are
// replaced as a whole and blank values are dropped.
func (p PCInfo) Assign(fields map[string]string) (PCInfo, error) {
	p.CustomFields = nil
	for name, v := range fields {
		switch name {
		case "department":
			p.Department = v
		case "ip":
			p.IP = v
		case "pcName":
			p.PCName = v
		case "motherboard":
			p.Motherboard = v
		case "cpu":
			p.CPU = v
		case "ram":
			p.RAM = v
		case "storage":
			p.Storage = v
		case "monitor":
			p.Monitor = v
		case "os":
			p.OS = v
		case "status":
			p.Status = PCStatus(v)
		case "floor":
			n, err := parseInt(name, v)
			if err != nil {
				return p, err
			}
			p.Floor = n
		default:
			p.CustomFields = setCustom(p.CustomFields, name, v)
		}
	}
	return p, nil
}

var laptopColumns = []string{"id", "pcName", "brand", "model", "cpu", "serialNumber", "ram", "storage", "userStatus", "department", "date", "hardwareStatus"}

func (l LaptopInfo) RecordID() int64            { return l.ID }
func (l LaptopInfo) WithID(id int64) LaptopInfo { l.ID = id; return l }
func (l LaptopInfo) DepartmentName() string     { return l.Department }
func (l LaptopInfo) Custom() map[string]string  { return l.CustomFields }
func (LaptopInfo) Columns() []string            { return laptopColumns }

func (l LaptopInfo) SearchFields() []string {
	return []string{l.PCName, l.Brand, l.Department, l.SerialNumber}
}

func (l LaptopInfo) Row() []string {
	return []string{
		strconv.FormatInt(l.ID, 10), l.PCName, l.Brand, l.Model, l.CPU, l.SerialNumber,
		l.RAM, l.Storage, l.UserStatus, l.Department, l.Date, string(l.HardwareStatus),
	}
}

// Assign returns a copy of l with the named fields replaced. Every other
// name, including "id", becomes a custom field; the custom fields are
// replaced as a whole and blank values are dropped.
func (l LaptopInfo) Assign(fields map[string]string) (LaptopInfo, error) {
	l.CustomFields = nil
	for name, v := range fields {
		switch name {
		case "pcName":
			l.PCName = v
		case "brand":
			l.Brand = v
		case "model":
			l.Model = v
		case "cpu":
			l.CPU = v
		case "serialNumber":
			l.SerialNumber = v
		case "ram":
			l.RAM = v
		case "storage":
			l.Storage = v
		case "userStatus":
			l.UserStatus = v
		case "department":
			l.Department = v
		case "date":
			l.Date = v
		case "hardwareStatus":
			l.HardwareStatus = HardwareStatus(v)
		default:
			l.CustomFields = setCustom(l.CustomFields, name, v)
		}
	}
	return l, nil
}

var serverColumns = []string{"id", "serverID", "brand", "model", "cpu", "totalCores", "ram", "storage", "raid", "status", "department"}

func (s ServerInfo) RecordID() int64            { return s.ID }
func (s ServerInfo) WithID(id int64) ServerInfo { s.ID = id; return s }
func (s ServerInfo) DepartmentName() string     { return s.Department }
func (s ServerInfo) Custom() map[string]string  { return s.CustomFields }
func (ServerInfo) Columns() []string            { return serverColumns }

func (s ServerInfo) SearchFields() []string {
	return []string{s.ServerID, s.Brand, s.Model}
}

func (s ServerInfo) Row() []string {
	return []string{
		strconv.FormatInt(s.ID, 10), s.ServerID, s.Brand, s.Model, s.CPU,
		strconv.Itoa(s.TotalCores), s.RAM, s.Storage, s.RAID, string(s.Status), s.Department,
	}
}

// Assign returns a copy of s with the named fields replaced. Every other
// name, including "id", becomes a custom field; the custom fields are
// replaced as a whole and blank values are dropped.
func (s ServerInfo) Assign(fields map[string]string) (ServerInfo, error) {
	s.CustomFields = nil
	for name, v := range fields {
		switch name {
		case "serverID":
			s.ServerID = v
		case "brand":
			s.Brand = v
		case "model":
			s.Model = v
		case "cpu":
			s.CPU = v
		case "totalCores":
			n, err := parseInt(name, v)
			if err != nil {
				return s, err
			}
			s.TotalCores = n
		case "ram":
			s.RAM = v
		case "storage":
			s.Storage = v
		case "raid":
			s.RAID = v
		case "status":
			s.Status = ServerStatus(v)
		case "department":
			s.Department = v
		default:
			s.CustomFields = setCustom(s.CustomFields, name, v)
		}
	}
	return s, nil
}

var peripheralColumns = []string{"id", "productName", "serialNumber", "pcName", "pcUsername", "department", "date", "time", "servicedBy", "comment"}

func (l PeripheralLog) RecordID() int64               { return l.ID }
func (l PeripheralLog) WithID(id int64) PeripheralLog { l.ID = id; return l }
func (l PeripheralLog) DepartmentName() string        { return l.Department }
func (PeripheralLog) Custom() map[string]string       { return nil }
func (PeripheralLog) Columns() []string               { return peripheralColumns }

func (l PeripheralLog) SearchFields() []string {
	return []string{l.ProductName, l.SerialNumber, l.Department, l.ServicedBy, l.PCName}
}

func (l PeripheralLog) Row() []string {
	return []string{
		strconv.FormatInt(l.ID, 10), l.ProductName, l.SerialNumber, l.PCName, l.PCUsername,
		l.Department, l.Date, l.Time, l.ServicedBy, l.Comment,
	}
}

// Assign returns a copy of l with the named fields replaced. Peripheral logs
// have no custom fields, so unknown names are rejected.
func (l PeripheralLog) Assign(fields map[string]string) (PeripheralLog, error) {
	for name, v := range fields {
		switch name {
		case "id":
		case "productName":
			l.ProductName = v
		case "serialNumber":
			l.SerialNumber = v
		case "pcName":
			l.PCName = v
		case "pcUsername":
			l.PCUsername = v
		case "department":
			l.Department = v
		case "date":
			l.Date = v
		case "time":
			l.Time = v
		case "servicedBy":
			l.ServicedBy = v
		case "comment":
			l.Comment = v
		default:
			return l, fmt.Errorf("unknown field %q", name)
		}
	}
	return l, nil
}

// FillPCDefaults fills fields that older stored data may lack.
func FillPCDefaults(p PCInfo) PCInfo {
	if p.Status == "" {
		p.Status = PCStatusOK
	}
	if p.Floor == 0 {
		p.Floor = DefaultFloor
	}
	return p
}

// FillLaptopDefaults fills fields that older stored data may lack.
func FillLaptopDefaults(l LaptopInfo) LaptopInfo {
	if l.HardwareStatus == "" {
		l.HardwareStatus = HardwareGood
	}
	return l
}

// FillServerDefaults fills fields that older stored data may lack.
func FillServerDefaults(s ServerInfo) ServerInfo {
	if s.Status == "" {
		s.Status = ServerOnline
	}
	return s
}

func parseInt(name, v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number, got %q", name, v)
	}
	return n, nil
}

func setCustom(c CustomFields, name, v string) CustomFields {
	if strings.TrimSpace(v) == "" {
		return c
	}
	if c == nil {
		c = CustomFields{}
	}
	c[name] = v
	return c
}
