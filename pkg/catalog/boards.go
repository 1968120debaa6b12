package catalog

var builtinBoards = []Board{
	{
		ID:           "arduino-uno-r3",
		Name:         "Arduino Uno R3",
		Category:     BoardArduino,
		Manufacturer: "Arduino",
		Description:  "ATmega328P-based development board with USB connectivity and a robust accessory ecosystem for rapid prototyping.",
		Specs: []Spec{
			{"Microcontroller", "ATmega328P"},
			{"Clock Speed", "16 MHz"},
			{"Flash Memory", "32 KB"},
			{"SRAM", "2 KB"},
			{"Operating Voltage", "5 V"},
			{"GPIO Pins", "14"},
			{"PWM Channels", "6"},
			{"Analog Inputs", "6"},
		},
		Image:      "https://upload.wikimedia.org/wikipedia/commons/3/38/Arduino_Uno_-_R3.jpg",
		Label:      "UNO",
		Dimensions: BoardDimensions{Width: 68.6, Height: 53.4, Thickness: 15},
		IO:         IOSummary{DigitalPins: 14, AnalogInputs: 6, Communication: []string{"UART", "I2C", "SPI"}},
		Power:      Power{Supply: "5 V USB / 7–12 V VIN", MaxCurrentMa: 500},
		Connectors: []ConnectorZone{
			{3.5, 3.6, 61.6, 4.8, "Digital I/O"},
			{3.5, 44, 36, 4.8, "Analog In"},
			{58.5, 18, 7.6, 16, "USB"},
			{5, 18, 9.6, 14, "Power"},
		},
	},
	{
		ID:           "arduino-portenta-h7",
		Name:         "Arduino Portenta H7",
		Category:     BoardArduino,
		Manufacturer: "Arduino Pro",
		Description:  "Dual-core STM32H747XI SOM with Wi-Fi, Bluetooth, high-speed peripherals and industrial temperature ratings.",
		Specs: []Spec{
			{"Microcontroller", "STM32H747XI (Cortex-M7 + Cortex-M4)"},
			{"Clock Speed", "480 MHz / 240 MHz"},
			{"RAM", "8 MB SDRAM + 1 MB SRAM"},
			{"Flash Memory", "16 MB QSPI + 2 MB Flash"},
			{"Wireless", "Wi-Fi 802.11b/g/n, Bluetooth LE"},
			{"Security", "Cryptographic accelerator with secure element"},
		},
		Image:      "https://content.arduino.cc/assets/PortentaH7_product.png",
		Label:      "Portenta",
		Dimensions: BoardDimensions{Width: 103.6, Height: 25, Thickness: 13},
		IO:         IOSummary{DigitalPins: 80, AnalogInputs: 16, Communication: []string{"UART", "SPI", "I2C", "CAN", "USB HS", "ETH"}},
		Power:      Power{Supply: "5 V USB-C / 6–36 V VIN", MaxCurrentMa: 1500},
		Connectors: []ConnectorZone{
			{3, 2.4, 97.6, 3.6, "High-Density IO"},
			{3, 19, 30, 3.6, "PMIC"},
			{68, 18.5, 28, 4, "USB-C"},
		},
	},
	{
		ID:           "adafruit-feather-rp2040",
		Name:         "Adafruit Feather RP2040",
		Category:     BoardArduino,
		Manufacturer: "Adafruit",
		Description:  "Feather-format RP2040 board with USB-C, STEMMA QT connector and native CircuitPython support.",
		Specs: []Spec{
			{"Microcontroller", "Raspberry Pi RP2040"},
			{"Clock Speed", "133 MHz"},
			{"Flash Memory", "8 MB QSPI"},
			{"RAM", "264 KB SRAM"},
			{"Operating Voltage", "3.3 V"},
			{"GPIO Pins", "21"},
			{"Analog Inputs", "4"},
			{"Connector", "STEMMA QT / Qwiic"},
		},
		Image:      "https://cdn-learn.adafruit.com/assets/assets/000/103/820/medium640/adafruit_products_rp2040-feather.png?1614286062",
		Label:      "Feather",
		Dimensions: BoardDimensions{Width: 50.8, Height: 22.9, Thickness: 8},
		IO:         IOSummary{DigitalPins: 21, AnalogInputs: 4, Communication: []string{"UART", "SPI", "I2C", "PIO"}},
		Power:      Power{Supply: "USB-C 5 V / LiPo 3.7 V", MaxCurrentMa: 600},
		Connectors: []ConnectorZone{
			{2.4, 2.4, 46, 3.4, "Feather Header A"},
			{2.4, 17.1, 46, 3.4, "Feather Header B"},
			{18, 9, 14, 4.2, "USB-C"},
		},
	},
	{
		ID:           "sparkfun-redboard-artemis",
		Name:         "SparkFun RedBoard Artemis",
		Category:     BoardArduino,
		Manufacturer: "SparkFun",
		Description:  "Ambiq Apollo3-powered Arduino-compatible board with Bluetooth LE and ultra-low-power performance.",
		Specs: []Spec{
			{"Microcontroller", "Ambiq Apollo3"},
			{"Clock Speed", "48 MHz (96 MHz burst)"},
			{"Flash Memory", "1 MB"},
			{"SRAM", "384 KB"},
			{"Operating Voltage", "3.3 V"},
			{"Wireless", "Bluetooth LE 5.0"},
			{"GPIO Pins", "23"},
		},
		Image:      "https://cdn.sparkfun.com//assets/parts/1/3/9/6/8/15444-SparkFun_RedBoard_Artemis-01.jpg",
		Label:      "Artemis",
		Dimensions: BoardDimensions{Width: 68.6, Height: 53.4, Thickness: 14},
		IO:         IOSummary{DigitalPins: 23, AnalogInputs: 8, Communication: []string{"UART", "SPI", "I2C", "Bluetooth LE"}},
		Power:      Power{Supply: "USB-C 5 V / 3.3 V regulated", MaxCurrentMa: 600},
		Connectors: []ConnectorZone{
			{4, 4, 60, 5, "GPIO"},
			{4, 44, 44, 5, "Analog"},
			{55, 20, 10, 18, "USB-C"},
		},
	},
	{
		ID:           "raspberry-pi-5-8gb",
		Name:         "Raspberry Pi 5 (8 GB)",
		Category:     BoardRaspberryPi,
		Manufacturer: "Raspberry Pi",
		Description:  "Latest flagship Raspberry Pi single-board computer delivering desktop-class Arm performance with PCIe and dual 4K HDMI.",
		Specs: []Spec{
			{"CPU", "2.4 GHz quad-core Cortex-A76"},
			{"GPU", "VideoCore VII @ 1 GHz"},
			{"RAM", "8 GB LPDDR4X"},
			{"Networking", "Wi-Fi 6, Bluetooth 5.0, Gigabit Ethernet"},
			{"Storage", "microSD, PCIe 2.0 x1"},
			{"USB", "2× USB 3.0, 2× USB 2.0"},
			{"Video", "2× micro-HDMI 2.1 (4K60)"},
		},
		Image:      "https://www.raspberrypi.com/app/uploads/2023/10/Raspberry-Pi-5-angled.png",
		Label:      "Pi 5",
		Dimensions: BoardDimensions{Width: 85, Height: 56, Thickness: 17},
		IO:         IOSummary{DigitalPins: 28, AnalogInputs: 0, Communication: []string{"GPIO", "I2C", "SPI", "UART", "PCIe", "MIPI CSI/DSI"}},
		Power:      Power{Supply: "USB-C PD (5 V / 5 A)", MaxCurrentMa: 5000},
		Connectors: []ConnectorZone{
			{5, 5, 75, 6, "40-pin GPIO"},
			{60, 18, 20, 10, "USB 3.0"},
			{58, 34, 22, 10, "HDMI"},
			{6, 18, 14, 12, "Power"},
		},
	},
	{
		ID:           "raspberry-pi-4-model-b-4gb",
		Name:         "Raspberry Pi 4 Model B (4 GB)",
		Category:     BoardRaspberryPi,
		Manufacturer: "Raspberry Pi",
		Description:  "Widely deployed single-board computer with quad-core Cortex-A72 CPU, dual micro-HDMI and Gigabit networking.",
		Specs: []Spec{
			{"CPU", "1.5 GHz quad-core Cortex-A72"},
			{"GPU", "VideoCore VI"},
			{"RAM", "4 GB LPDDR4"},
			{"Networking", "Wi-Fi 5, Bluetooth 5.0, Gigabit Ethernet"},
			{"USB", "2× USB 3.0, 2× USB 2.0"},
			{"Video", "2× micro-HDMI 2.0 (4K30)"},
			{"Storage", "microSD"},
		},
		Image:      "https://upload.wikimedia.org/wikipedia/commons/3/3b/Raspberry_Pi_4_Model_B_-_Side.jpg",
		Label:      "Pi 4",
		Dimensions: BoardDimensions{Width: 85, Height: 56, Thickness: 17},
		IO:         IOSummary{DigitalPins: 28, AnalogInputs: 0, Communication: []string{"GPIO", "I2C", "SPI", "UART", "MIPI CSI/DSI"}},
		Power:      Power{Supply: "USB-C 5 V / 3 A", MaxCurrentMa: 3000},
		Connectors: []ConnectorZone{
			{5, 5, 75, 6, "40-pin GPIO"},
			{58, 18, 24, 10, "USB 3.0"},
			{58, 34, 24, 10, "micro-HDMI"},
			{6, 18, 14, 12, "USB-C"},
		},
	},
	{
		ID:           "raspberry-pi-pico-w",
		Name:         "Raspberry Pi Pico W",
		Category:     BoardRaspberryPi,
		Manufacturer: "Raspberry Pi",
		Description:  "Dual-core RP2040 microcontroller board with integrated Infineon CYW43439 Wi-Fi for low-power connected applications.",
		Specs: []Spec{
			{"Microcontroller", "RP2040"},
			{"Clock Speed", "133 MHz"},
			{"Flash Memory", "2 MB"},
			{"RAM", "264 KB SRAM"},
			{"Wireless", "2.4 GHz 802.11n Wi-Fi"},
			{"Operating Voltage", "1.8–5.5 V"},
			{"GPIO Pins", "26"},
		},
		Image:      "https://datasheets.raspberrypi.com/picow/PIOP-Pico-W-top.png",
		Label:      "Pico W",
		Dimensions: BoardDimensions{Width: 51, Height: 21, Thickness: 5},
		IO:         IOSummary{DigitalPins: 26, AnalogInputs: 3, Communication: []string{"UART", "SPI", "I2C", "PIO"}},
		Power:      Power{Supply: "USB 5 V / VSYS 1.8–5.5 V", MaxCurrentMa: 700},
		Connectors: []ConnectorZone{
			{2.4, 2.2, 46.2, 3.2, "Header A"},
			{2.4, 15.6, 46.2, 3.2, "Header B"},
			{18, 7.5, 14, 5, "Wi-Fi"},
		},
	},
	{
		ID:           "nvidia-jetson-orin-nano",
		Name:         "NVIDIA Jetson Orin Nano 8GB Developer Kit",
		Category:     BoardRaspberryPi,
		Manufacturer: "NVIDIA",
		Description:  "AI edge computing kit delivering up to 40 TOPS with an Orin Nano module and rich I/O for robotics and vision workloads.",
		Specs: []Spec{
			{"CPU", "6-core Arm Cortex-A78AE"},
			{"GPU", "1024-core NVIDIA Ampere"},
			{"RAM", "8 GB LPDDR5"},
			{"Storage", "64 GB eMMC, microSD slot"},
			{"Networking", "2.5 Gb Ethernet, Wi-Fi via M.2"},
			{"Video", "2× MIPI CSI, 1× DP 1.4a"},
		},
		Image:      "https://developer.nvidia.com/sites/default/files/akamai/embedded/images/jetson-orin-nano-dev-kit-front-angle.png",
		Label:      "Jetson",
		Dimensions: BoardDimensions{Width: 100, Height: 80, Thickness: 25},
		IO:         IOSummary{DigitalPins: 40, AnalogInputs: 0, Communication: []string{"PCIe", "I2C", "SPI", "UART", "CAN", "GPIO"}},
		Power:      Power{Supply: "USB-C 5 V / Barrel 19 V", MaxCurrentMa: 6500},
		Connectors: []ConnectorZone{
			{5, 5, 90, 8, "40-pin Expansion"},
			{8, 26, 30, 12, "DP 1.4a"},
			{62, 26, 30, 12, "USB-C"},
			{40, 58, 20, 14, "M.2 Key"},
		},
	},
	{
		ID:           "digilent-nexys-a7-100t",
		Name:         "Digilent Nexys A7-100T",
		Category:     BoardFPGA,
		Manufacturer: "Digilent",
		Description:  "Artix-7 FPGA development board with DDR3 memory, dual Ethernet PHYs and rich expansion for digital design education.",
		Specs: []Spec{
			{"FPGA", "Xilinx XC7A100T-1CSG324C"},
			{"Memory", "128 MB DDR3L, 16 MB Quad-SPI Flash"},
			{"Clocks", "100 MHz on-board oscillator"},
			{"Connectivity", "Dual USB-UART/JTAG, 10/100 Ethernet, microSD"},
			{"Expansion", "Pmod, XADC, FMC LPC"},
			{"Power", "USB or 12 V barrel jack"},
		},
		Image:      "https://digilent.com/reference/_media/nexys-a7/nexys-a7-100t.png",
		Label:      "Nexys A7",
		Dimensions: BoardDimensions{Width: 190, Height: 140, Thickness: 20},
		IO:         IOSummary{DigitalPins: 200, AnalogInputs: 8, Communication: []string{"GPIO", "Ethernet", "USB-UART", "FMC LPC"}},
		Power:      Power{Supply: "USB 5 V / 7–15 V barrel", MaxCurrentMa: 2500},
		Connectors: []ConnectorZone{
			{6, 6, 70, 10, "Pmod Bank A"},
			{114, 6, 70, 10, "Pmod Bank B"},
			{10, 118, 40, 12, "Ethernet"},
			{140, 118, 40, 12, "USB / Power"},
		},
	},
	{
		ID:           "terasic-de10-nano",
		Name:         "Terasic DE10-Nano",
		Category:     BoardFPGA,
		Manufacturer: "Terasic",
		Description:  "Cyclone V SoC FPGA kit combining dual-core ARM Cortex-A9 with FPGA fabric, HDMI, ADC and extensive GPIO headers.",
		Specs: []Spec{
			{"FPGA", "Intel Cyclone V SE 5CSEBA6U23I7"},
			{"Processor", "Dual-core ARM Cortex-A9 @ 925 MHz"},
			{"Memory", "1 GB DDR3, 64 MB SDRAM, 8 MB SRAM"},
			{"Storage", "8 GB microSD (included)"},
			{"Connectivity", "HDMI, USB OTG, Gigabit Ethernet, ADC"},
			{"Expansion", "2× 40-pin GPIO, Arduino Header"},
		},
		Image:      "https://www.terasic.com.tw/cgi-bin/page/archive.pl?Language=English&No=1046&PartNo=1",
		Label:      "DE10-Nano",
		Dimensions: BoardDimensions{Width: 120, Height: 70, Thickness: 22},
		IO:         IOSummary{DigitalPins: 148, AnalogInputs: 6, Communication: []string{"GPIO", "I2C", "SPI", "UART", "ADC", "Ethernet"}},
		Power:      Power{Supply: "5 V barrel jack", MaxCurrentMa: 4000},
		Connectors: []ConnectorZone{
			{4, 4, 112, 8, "GPIO Bank A"},
			{4, 58, 112, 8, "GPIO Bank B"},
			{10, 24, 30, 12, "HDMI"},
			{78, 24, 32, 12, "Ethernet"},
		},
	},
	{
		ID:           "xilinx-kria-kv260",
		Name:         "Xilinx Kria KV260 Vision AI Starter Kit",
		Category:     BoardFPGA,
		Manufacturer: "AMD Xilinx",
		Description:  "Adaptive SoM featuring Zynq UltraScale+ MPSoC for embedded vision with pre-built acceleration stacks and M.2 expansion.",
		Specs: []Spec{
			{"MPSoC", "Zynq UltraScale+ XCK26-SFVC784"},
			{"Memory", "4 GB LPDDR4, 16 GB eMMC"},
			{"Connectivity", "2× USB 3.0, Gigabit Ethernet, 2× DisplayPort"},
			{"Acceleration", "Vision, robotics, sensor fusion apps"},
			{"Expansion", "2× SYZYGY, Raspberry Pi header, M.2 Key M"},
		},
		Image:      "https://www.xilinx.com/content/dam/xilinx/imgs/products/adaptive-socs-and-fpgas/kria/kv260-starter-kit-angle.png",
		Label:      "KV260",
		Dimensions: BoardDimensions{Width: 120, Height: 77, Thickness: 24},
		IO:         IOSummary{DigitalPins: 180, AnalogInputs: 0, Communication: []string{"Gigabit Ethernet", "USB 3.0", "DisplayPort", "MIPI", "SYZYGY"}},
		Power:      Power{Supply: "12 V barrel jack", MaxCurrentMa: 3500},
		Connectors: []ConnectorZone{
			{6, 6, 108, 8, "Raspberry Pi Header"},
			{8, 28, 32, 12, "DP Out"},
			{80, 28, 32, 12, "USB 3.0"},
			{42, 56, 36, 12, "SYZYGY"},
		},
	},
	{
		ID:           "lattice-ecp5-versa",
		Name:         "Lattice ECP5 Versa Development Kit",
		Category:     BoardFPGA,
		Manufacturer: "Lattice Semiconductor",
		Description:  "ECP5 FPGA platform with SERDES, dual camera connectors and PCIe for communications and industrial automation designs.",
		Specs: []Spec{
			{"FPGA", "LFE5UM-85F-8BG381"},
			{"Memory", "64 MB SDRAM, 32 Mbit SPI Flash"},
			{"Connectivity", "USB, Gigabit Ethernet, DisplayPort, HDMI"},
			{"Expansion", "PCIe edge connector, GPIO header, Dual CSI-2"},
			{"Clocking", "125 MHz and 27 MHz oscillators"},
		},
		Image:      "https://www.latticesemi.com/-/media/LatticeSemi/Documents/DataSheets/ECP5/VersaECP5Board.ashx",
		Label:      "ECP5 Versa",
		Dimensions: BoardDimensions{Width: 120, Height: 80, Thickness: 18},
		IO:         IOSummary{DigitalPins: 120, AnalogInputs: 0, Communication: []string{"PCIe", "Gigabit Ethernet", "DisplayPort", "HDMI", "GPIO"}},
		Power:      Power{Supply: "12 V barrel jack", MaxCurrentMa: 3000},
		Connectors: []ConnectorZone{
			{6, 6, 40, 10, "GPIO Header"},
			{74, 6, 40, 10, "DisplayPort"},
			{10, 60, 40, 12, "PCIe Edge"},
			{70, 60, 40, 12, "Ethernet / USB"},
		},
	},
}

// BoardCategoryInfo labels a board category for display.
type BoardCategoryInfo struct {
	ID    BoardCategory
	Label string
}

// BoardCategories lists board categories in display order.
var BoardCategories = []BoardCategoryInfo{
	{BoardArduino, "Arduino & Microcontroller"},
	{BoardRaspberryPi, "Raspberry Pi & SBC"},
	{BoardFPGA, "FPGA & SoC"},
}
