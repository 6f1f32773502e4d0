package models

// Bundled datasets used to seed a collection the first time its slot is read.
// Each function returns a fresh slice so callers may mutate it.

// DefaultPCs returns the bundled PC dataset.
func DefaultPCs() []PCInfo {
	return []PCInfo{
		{ID: 1, Department: "Editorial", IP: "192.168.170.1", PCName: "EDITDELL01", Motherboard: "GIGABYTE B460M-DS3H", CPU: "Core i5-4570 @ 3.20 GHz", RAM: "4 GB DDR3", Storage: "TOSHIBA 500 GB", Monitor: `DELL 22"`, OS: "Win 10", Status: PCStatusOK, Floor: 7},
		{ID: 2, Department: "Editorial", IP: "192.168.170.2", PCName: "EDITCLONE02", Motherboard: "GIGABYTE B460M-DS3H", CPU: "Core i5-4570 @ 3.20 GHz", RAM: "4 GB DDR3", Storage: "TOSHIBA 500 GB", Monitor: `DELL 22"`, OS: "Win 10", Status: PCStatusOK, Floor: 7},
		{ID: 3, Department: "MAKEUP", IP: "192.168.170.3", PCName: "MAKEUPCLONE03", Motherboard: "ASUS PRIME Z270M-PLUS", CPU: "Core i7-7700 @ 3.60 GHz", RAM: "8 GB DDR4", Storage: "SAMSUNG 250 GB SSD", Monitor: `HP 19"`, OS: "Win 10", Status: PCStatusOK, Floor: 6},
		{ID: 4, Department: "MAGAZINE", IP: "192.168.170.4", PCName: "MAGAZINECLONE04", Motherboard: "GIGABYTE GA-B150M-DS3H", CPU: "Core i5-7500 @ 3.40 GHz", RAM: "4 GB DDR4", Storage: "WD 250 GB", Monitor: `SAMSUNG 19"`, OS: "Win XP", Status: PCStatusRepair, Floor: 6},
		{ID: 5, Department: "IT Desk", IP: "192.168.170.5", PCName: "ITDESKDELL05", Motherboard: "DELL Vostro", CPU: "Core i5-2nd Gen", RAM: "4 GB DDR3", Storage: "DELL 500 GB", Monitor: `DELL 22"`, OS: "Win 10", Status: PCStatusOK, Floor: 5},
		{ID: 6, Department: "Accounts", IP: "192.168.170.6", PCName: "ACCOUNTSCLONE06", Motherboard: "ASUS PRIME Z270M-PLUS", CPU: "Core i3-7100 @ 3.90 GHz", RAM: "4 GB DDR4", Storage: "TOSHIBA 1 TB", Monitor: `LG 22"`, OS: "Win 10", Status: PCStatusOK, Floor: 5},
	}
}

// DefaultLaptops returns the bundled laptop dataset.
func DefaultLaptops() []LaptopInfo {
	return []LaptopInfo{
		{ID: 1, PCName: "DSG04951", Brand: "HP", Model: "PROBOOK 450 G8", CPU: "Core i5-11th Gen", SerialNumber: "5CD1488S3B", RAM: "8 GB", Storage: "256 GB SSD", UserStatus: "BAD", Department: "IT DC", Date: "29-08-2022", HardwareStatus: HardwareGood},
		{ID: 2, PCName: "DSG04952", Brand: "HP", Model: "PROBOOK 450 G8", CPU: "Core i5-11th Gen", SerialNumber: "5CD1488S3C", RAM: "8 GB", Storage: "256 GB SSD", UserStatus: "GOOD", Department: "IT DC", Date: "29-08-2022", HardwareStatus: HardwareGood},
		{ID: 3, PCName: "DSG04953", Brand: "ACER", Model: "ASPIRE A515-41G", CPU: "AMD A12-9720P", SerialNumber: "NXGP4SI005", RAM: "8 GB", Storage: "1 TB HDD", UserStatus: "BAD", Department: "IT DC", Date: "17-01-2022", HardwareStatus: HardwareBatteryProblem},
		{ID: 4, PCName: "DSG04954", Brand: "ASUS", Model: "ASUS-411U", CPU: "Core i3-7th Gen", SerialNumber: "J2N0CV219", RAM: "4 GB", Storage: "1 TB HDD", UserStatus: "GOOD", Department: "Graphics", Date: "01-04-2022", HardwareStatus: HardwareGood},
		{ID: 5, PCName: "DSG04955", Brand: "HP", Model: "PROBOOK 450 G8", CPU: "Core i5-11th Gen", SerialNumber: "5CD1488S3D", RAM: "8 GB", Storage: "256 GB SSD", UserStatus: "GOOD", Department: "Editorial", Date: "29-08-2022", HardwareStatus: HardwarePlatformProblem},
		{ID: 6, PCName: "DSG04956", Brand: "DELL", Model: "VOSTRO-3400", CPU: "Core i5-11th Gen", SerialNumber: "6B3Z8J3", RAM: "8 GB", Storage: "1 TB HDD", UserStatus: "GOOD", Department: "IT", Date: "19-10-2022", HardwareStatus: HardwareGood},
	}
}

// DefaultServers returns the bundled server dataset.
func DefaultServers() []ServerInfo {
	return []ServerInfo{
		{ID: 1, ServerID: "192.168.150.116", Brand: "ERICSSON", Model: "ERICSSON ENU/B1", CPU: "Intel Xeon E5-2695 v4 @ 2.10GHz", TotalCores: 72, RAM: "256 GB", Storage: "960 GBx3", RAID: "RAID5", Status: ServerOnline, Department: "IT DC"},
		{ID: 2, ServerID: "172.17.150.117", Brand: "ERICSSON", Model: "ERICSSON ENU/B1", CPU: "Intel Xeon E5-2695 v4 @ 2.10GHz", TotalCores: 72, RAM: "256 GB", Storage: "960 GBx3", RAID: "RAID5", Status: ServerOnline, Department: "IT DC"},
		{ID: 3, ServerID: "192.168.150.118", Brand: "ERICSSON", Model: "ERICSSON ENU/B1", CPU: "Intel Xeon E5-2695 v4 @ 2.10GHz", TotalCores: 72, RAM: "256 GB", Storage: "960 GBx3", RAID: "RAID5", Status: ServerMaintenance, Department: "IT DC"},
		{ID: 4, ServerID: "192.168.150.119", Brand: "ERICSSON", Model: "ERICSSON ENU/B1", CPU: "Intel Xeon E5-2695 v4 @ 2.10GHz", TotalCores: 72, RAM: "256 GB", Storage: "960 GBx3", RAID: "RAID5", Status: ServerOnline, Department: "IT DC"},
		{ID: 5, ServerID: "192.168.150.120", Brand: "HP", Model: "HP APOLLO 4200 G9", CPU: "Intel Xeon E5-2620 v4 @ 2.10GHz", TotalCores: 32, RAM: "256 GB", Storage: "1.8TB*10, 256*4", RAID: "RAID10", Status: ServerOffline, Department: "IT DC"},
		{ID: 6, ServerID: "192.168.150.121", Brand: "ASUSTOR", Model: "ASUSTOR AS6508T NAS", CPU: "Intel Atom Quad-Core", TotalCores: 4, RAM: "32 GB", Storage: "20TB*2", RAID: "RAID1", Status: ServerOnline, Department: "IT DC"},
	}
}

// DefaultMouseLogs returns the bundled mouse service log.
func DefaultMouseLogs() []PeripheralLog {
	return []PeripheralLog{
		{ID: 1, ProductName: "A4TECH OP-720 USB Wired Mouse", SerialNumber: "GB2501023321", PCName: "DE25012345", PCUsername: "salman", Department: "Business Development", Date: "07/07/2025", Time: "9:25 AM", ServicedBy: "Fahad Hossen", Comment: "Replace new one due to old mouse is not fun"},
		{ID: 2, ProductName: "A4TECH OP-330 USB Wired Mouse", SerialNumber: "GB2504001265", Department: "Arts & Entertainment", Date: "24/09/2025", ServicedBy: "Jaber", Comment: "Replace new one due to old mouse is not fun"},
		{ID: 3, ProductName: "A4TECH OP-330 USB Wired Mouse", SerialNumber: "GB2504076570", Date: "24/09/2025", Comment: "User reported intermittent disconnection"},
		{ID: 4, ProductName: "A4TECH OP-330 USB Wired Mouse", SerialNumber: "GB2501029081", Department: "IT", Date: "24/09/2025", ServicedBy: "Admin", Comment: "New stock registration"},
		{ID: 5, ProductName: "A4TECH OP-330 USB Wired Mouse", SerialNumber: "GB2504076571", PCUsername: "Tasnim Tabassum", Department: "Commercial Suppliment", Date: "28/09/2025", Time: "11:59 AM", ServicedBy: "Fahad Hossen", Comment: "Replaced old damage one"},
		{ID: 6, ProductName: "A4TECH OP-330 USB Wired Mouse", SerialNumber: "GB2504076569", PCUsername: "zyma", Department: "Reporting", Date: "27/09/2025", Time: "12:17 PM", ServicedBy: "Fahad Hossen", Comment: "Replace due to damage previous one"},
	}
}

// DefaultKeyboardLogs returns the bundled keyboard service log.
func DefaultKeyboardLogs() []PeripheralLog {
	return []PeripheralLog{
		{ID: 1, ProductName: "Logitech K120 Wired Keyboard", SerialNumber: "KB2501023321", PCName: "DE25012345", PCUsername: "salman", Department: "Business Development", Date: "07/07/2025", Time: "9:30 AM", ServicedBy: "Fahad Hossen", Comment: "Upgraded from old model"},
		{ID: 2, ProductName: "Dell KB216 Wired Keyboard", SerialNumber: "KB2504001265", Department: "Arts & Entertainment", Date: "24/09/2025", ServicedBy: "Jaber", Comment: "Sticky keys reported, replaced."},
	}
}

// DefaultSSDLogs returns the bundled SSD service log.
func DefaultSSDLogs() []PeripheralLog {
	return []PeripheralLog{
		{ID: 1, ProductName: "Samsung 870 EVO 500GB SSD", SerialNumber: "SSD2501023321", PCName: "DE25012345", PCUsername: "salman", Department: "Business Development", Date: "07/07/2025", Time: "10:00 AM", ServicedBy: "Fahad Hossen", Comment: "OS drive upgrade for performance"},
		{ID: 2, ProductName: "Crucial MX500 1TB SSD", SerialNumber: "SSD2504001265", PCName: "EDITDELL01", PCUsername: "designer1", Department: "Editorial", Date: "25/09/2025", Time: "2:00 PM", ServicedBy: "Admin", Comment: "Added as secondary storage for projects."},
	}
}
