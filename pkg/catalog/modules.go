package catalog

// compatRule decides which boards a built-in module lists as compatible.
type compatRule int

const (
	compatAll    compatRule = iota // every board in the catalog
	compatNoFPGA                   // every board except FPGA-class ones
)

func (r compatRule) resolve(boards []Board) []string {
	ids := make([]string, 0, len(boards))
	for _, b := range boards {
		if r == compatNoFPGA && b.Category == BoardFPGA {
			continue
		}
		ids = append(ids, b.ID)
	}
	return ids
}

type moduleDef struct {
	rule compatRule
	meta ModuleMetadata
}

func elec(voltage string, currentMa float64, pins int, ifaces ...string) Electrical {
	return Electrical{SupplyVoltage: voltage, TypicalCurrentMa: currentMa, IOPins: pins, Interfaces: ifaces}
}

func grams(g float64) *Mechanical { return &Mechanical{WeightGrams: &g} }

var builtinModules = []moduleDef{
	{compatAll, ModuleMetadata{
		ID:          "mod-bme688",
		Name:        "Bosch BME688 Environmental Sensor",
		Description: "High precision humidity, pressure, gas and temperature sensor with AI-based gas scanning.",
		SourceURL:   "https://www.bosch-sensortec.com/products/environmental-sensors/gas-sensors/bme688/",
		Category:    ModuleSensor, Status: StatusCompatible,
		Dimensions: Dimensions{25, 25, 5}, Icon: "BsCloudFog2",
		Electrical: elec("1.71–3.6 V", 3.9, 4, "I2C", "SPI"),
		Mechanical: grams(1.2),
	}},
	{compatAll, ModuleMetadata{
		ID:          "mod-vl53l5cx",
		Name:        "VL53L5CX Time-of-Flight Array",
		Description: "8x8 ToF sensor with wide field of view depth sensing up to 400cm.",
		SourceURL:   "https://www.st.com/en/imaging-and-photonics-solutions/vl53l5cx.html",
		Category:    ModuleSensor, Status: StatusCompatible,
		Dimensions: Dimensions{18, 18, 6}, Icon: "BsViewList",
		Electrical: elec("3.3 V", 130, 4, "I2C"),
	}},
	{compatNoFPGA, ModuleMetadata{
		ID:          "mod-pixy2",
		Name:        "Pixy2 CMUcam5 Smart Vision",
		Description: "Fast vision sensor for color object recognition and line following.",
		SourceURL:   "https://pixycam.com/pixy2/",
		Category:    ModuleSensor, Status: StatusPartial,
		Dimensions: Dimensions{45, 35, 25}, Icon: "BsCameraVideo",
		Electrical: elec("5 V", 140, 6, "SPI", "I2C", "UART", "USB"),
		Mechanical: grams(10),
	}},
	{compatAll, ModuleMetadata{
		ID:          "mod-mpu6050",
		Name:        "MPU-6050 6-DOF IMU",
		Description: "3-axis gyroscope and accelerometer combo sensor for motion tracking.",
		SourceURL:   "https://invensense.tdk.com/products/motion-tracking/6-axis/mpu-6050/",
		Category:    ModuleSensor, Status: StatusCompatible,
		Dimensions: Dimensions{21, 16, 4}, Icon: "BsCompass",
		Electrical: elec("3.3–5 V", 3.9, 8, "I2C"),
	}},
	{compatAll, ModuleMetadata{
		ID:          "mod-apds9960",
		Name:        "APDS-9960 Gesture Sensor",
		Description: "RGB light, proximity, and gesture detection sensor for HMI.",
		SourceURL:   "https://www.broadcom.com/products/optical-sensors/gesture-sensor/apds-9960",
		Category:    ModuleSensor, Status: StatusCompatible,
		Dimensions: Dimensions{20, 20, 5}, Icon: "BsHandIndexThumb",
		Electrical: elec("2.4–3.6 V", 0.79, 5, "I2C"),
	}},
	{compatAll, ModuleMetadata{
		ID:          "mod-max30102",
		Name:        "MAX30102 Pulse Oximetry Sensor",
		Description: "Integrated pulse oximeter and heart-rate sensor module for wellness projects.",
		SourceURL:   "https://www.analog.com/en/products/max30102.html",
		Category:    ModuleSensor, Status: StatusCompatible,
		Dimensions: Dimensions{18, 18, 6}, Icon: "BsHeartPulse",
		Electrical: elec("1.8 V / 3.3 V", 0.6, 5, "I2C"),
	}},
	{compatAll, ModuleMetadata{
		ID:          "mod-hx711",
		Name:        "HX711 Load Cell Amplifier",
		Description: "24-bit ADC for weigh scales and industrial control applications.",
		SourceURL:   "https://www.sparkfun.com/products/13879",
		Category:    ModuleSensor, Status: StatusCompatible,
		Dimensions: Dimensions{22, 18, 4}, Icon: "BsSpeedometer",
		Electrical: elec("2.6–5.5 V", 1.5, 2, "GPIO"),
	}},
	{compatAll, ModuleMetadata{
		ID:          "mod-ads1115",
		Name:        "ADS1115 16-bit ADC",
		Description: "Precision 16-bit analog to digital converter with programmable gain.",
		SourceURL:   "https://www.ti.com/product/ADS1115",
		Category:    ModuleSensor, Status: StatusCompatible,
		Dimensions: Dimensions{25, 22, 4}, Icon: "BsBarChart",
		Electrical: elec("2–5.5 V", 0.15, 4, "I2C"),
	}},
	{compatAll, ModuleMetadata{
		ID:          "mod-lora-e5",
		Name:        "LoRa-E5 Mini Module",
		Description: "LoRaWAN module powered by STM32WLE5 for long-range IoT connectivity.",
		SourceURL:   "https://www.seeedstudio.com/LoRa-E5-Wireless-Module-p-4743.html",
		Category:    ModuleCommunication, Status: StatusCompatible,
		Dimensions: Dimensions{40, 20, 6}, Icon: "BsBroadcast",
		Electrical: elec("3.3–5 V", 17, 2, "UART"),
	}},
	{compatAll, ModuleMetadata{
		ID:          "mod-esp32-wroom",
		Name:        "ESP32-WROOM Dev Module",
		Description: "Wi-Fi and Bluetooth combo SoC module ideal for IoT prototyping.",
		SourceURL:   "https://www.espressif.com/en/products/modules/esp32",
		Category:    ModuleCommunication, Status: StatusCompatible,
		Dimensions: Dimensions{28, 18, 6}, Icon: "BsWifi",
		Electrical: elec("3.0–3.6 V", 80, 26, "UART", "SPI", "I2C", "PWM"),
		Mechanical: grams(3.5),
	}},
	{compatAll, ModuleMetadata{
		ID:          "mod-ublox-neo-m8n",
		Name:        "u-blox NEO-M8N GNSS",
		Description: "Multi-constellation GNSS receiver for GPS, GLONASS, Galileo and BeiDou.",
		SourceURL:   "https://www.u-blox.com/en/product/neo-m8-series",
		Category:    ModuleCommunication, Status: StatusCompatible,
		Dimensions: Dimensions{28, 30, 8}, Icon: "BsGeoAlt",
		Electrical: elec("3.3–5 V", 23, 4, "UART", "I2C", "USB"),
	}},
	{compatAll, ModuleMetadata{
		ID:          "mod-ina219",
		Name:        "INA219 High-Side Current Sensor",
		Description: "I2C current monitor for precise power profiling of embedded systems.",
		SourceURL:   "https://www.ti.com/product/INA219",
		Category:    ModuleSensor, Status: StatusCompatible,
		Dimensions: Dimensions{26, 23, 5}, Icon: "BsLightningCharge",
		Electrical: elec("3–5.5 V", 1, 4, "I2C", "Power"),
	}},
	{compatAll, ModuleMetadata{
		ID:          "mod-scd41",
		Name:        "Sensirion SCD41 CO₂ Sensor",
		Description: "Photoacoustic CO₂ sensor with temperature and humidity compensation.",
		SourceURL:   "https://sensirion.com/products/catalog/SCD41/",
		Category:    ModuleSensor, Status: StatusCompatible,
		Dimensions: Dimensions{27, 27, 7}, Icon: "BsWind",
		Electrical: elec("2.4–5.5 V", 15, 4, "I2C"),
	}},
	{compatAll, ModuleMetadata{
		ID:          "mod-pan1740a",
		Name:        "Panasonic PAN1740A BLE Module",
		Description: "Bluetooth Low Energy module featuring Dialog Semiconductor SoC.",
		SourceURL:   "https://industry.panasonic.eu/products/devices/wireless-connectivity/bluetooth-low-energy/pan1740a",
		Category:    ModuleCommunication, Status: StatusCompatible,
		Dimensions: Dimensions{15, 19, 3}, Icon: "BsBluetooth",
		Electrical: elec("1.9–3.6 V", 5, 14, "UART", "SPI", "I2C"),
	}},
	{compatAll, ModuleMetadata{
		ID:          "mod-as7341",
		Name:        "AS7341 11-Channel Spectral Sensor",
		Description: "11-channel spectral color sensor for lighting and horticulture analytics.",
		SourceURL:   "https://ams-osram.com/products/spectral-sensors/as7341",
		Category:    ModuleSensor, Status: StatusCompatible,
		Dimensions: Dimensions{16, 16, 4}, Icon: "BsPalette",
		Electrical: elec("3.3 V", 0.3, 4, "I2C"),
	}},
	{compatAll, ModuleMetadata{
		ID:          "mod-ls7366r",
		Name:        "LS7366R Quadrature Counter",
		Description: "32-bit quadrature counter for precision motion control applications.",
		SourceURL:   "https://lsicsi.com/datasheets/LS7366R.pdf",
		Category:    ModuleSensor, Status: StatusCompatible,
		Dimensions: Dimensions{24, 24, 6}, Icon: "BsGearWideConnected",
		Electrical: elec("3–5.5 V", 0.2, 6, "SPI"),
	}},
	{compatAll, ModuleMetadata{
		ID:          "mod-lsm9ds1",
		Name:        "LSM9DS1 9-DoF IMU",
		Description: "Accelerometer, gyroscope, magnetometer 9-axis motion sensor fusion.",
		SourceURL:   "https://www.st.com/en/mems-and-sensors/lsm9ds1.html",
		Category:    ModuleSensor, Status: StatusCompatible,
		Dimensions: Dimensions{22, 22, 6}, Icon: "BsArrowRepeat",
		Electrical: elec("1.9–3.6 V", 4.6, 6, "I2C", "SPI"),
	}},
	{compatAll, ModuleMetadata{
		ID:          "mod-oled128x64",
		Name:        "Monochrome OLED 128x64 Display",
		Description: "I2C/SPI OLED display for rapid UI prototyping with crisp text and graphics.",
		SourceURL:   "https://learn.adafruit.com/monochrome-oled-breakouts",
		Category:    ModuleDisplay, Status: StatusCompatible,
		Dimensions: Dimensions{27, 27, 8}, Icon: "BsDisplay",
		Electrical: elec("3.3–5 V", 20, 4, "I2C", "SPI"),
	}},
	{compatAll, ModuleMetadata{
		ID:          "mod-tmc2209",
		Name:        "TMC2209 SilentStepStick Driver",
		Description: "Stepper motor driver with StealthChop for silent motion control.",
		SourceURL:   "https://www.trinamic.com/products/integrated-circuits/details/tmc2209-la/",
		Category:    ModuleActuator, Status: StatusCompatible,
		Dimensions: Dimensions{25, 32, 10}, Icon: "BsSpeedometer2",
		Electrical: elec("4.75–29 V", 2000, 8, "UART", "PWM", "Power"),
	}},
	{compatNoFPGA, ModuleMetadata{
		ID:          "mod-relay4ch",
		Name:        "4-Channel 10A Relay Board",
		Description: "Opto-isolated relay module for switching high-voltage loads.",
		SourceURL:   "https://www.sainsmart.com/products/4-channel-5v-relay-module",
		Category:    ModuleActuator, Status: StatusPartial,
		Dimensions: Dimensions{65, 45, 18}, Icon: "BsToggleOn",
		Electrical: elec("5 V", 280, 4, "GPIO", "Power"),
		Mechanical: grams(60),
	}},
	{compatAll, ModuleMetadata{
		ID:          "mod-servo",
		Name:        "MG996R High Torque Servo",
		Description: "Standard high torque servo motor for robotics and RC applications.",
		SourceURL:   "https://www.towerpro.com.tw/product/mg996r/",
		Category:    ModuleActuator, Status: StatusCompatible,
		Dimensions: Dimensions{40, 20, 35}, Icon: "BsArrowDownUp",
		Electrical: elec("4.8–7.2 V", 500, 1, "PWM", "Power"),
		Mechanical: grams(55),
	}},
	{compatAll, ModuleMetadata{
		ID:          "mod-neo-trellis",
		Name:        "NeoTrellis RGB Grid",
		Description: "4x8 RGB button grid with seesaw I2C driver for creative interfaces.",
		SourceURL:   "https://learn.adafruit.com/adafruit-neotrellis",
		Category:    ModuleDisplay, Status: StatusCompatible,
		Dimensions: Dimensions{80, 60, 12}, Icon: "BsGrid3X3Gap",
		Electrical: elec("3.3–5 V", 60, 3, "I2C"),
	}},
	{compatAll, ModuleMetadata{
		ID:          "mod-qwiic-twist",
		Name:        "Qwiic Twist RGB Rotary Encoder",
		Description: "Qwiic enabled rotary encoder with push button and RGB indicator.",
		SourceURL:   "https://www.sparkfun.com/products/15083",
		Category:    ModuleSensor, Status: StatusCompatible,
		Dimensions: Dimensions{28, 28, 18}, Icon: "BsArrowClockwise",
		Electrical: elec("3.3 V", 12, 1, "I2C"),
	}},
	{compatAll, ModuleMetadata{
		ID:          "mod-powerboost1000",
		Name:        "PowerBoost 1000C Power Supply",
		Description: "LiPo boost converter with battery charging for portable builds.",
		SourceURL:   "https://learn.adafruit.com/adafruit-powerboost-1000c-load-share-usb-charge-boost",
		Category:    ModulePower, Status: StatusCompatible,
		Dimensions: Dimensions{40, 22, 8}, Icon: "BsBatteryCharging",
		Electrical: elec("3.7 V LiPo / 5 V out", 1000, 3, "Power"),
	}},
}

// ModuleCategoryInfo labels a module category for display.
type ModuleCategoryInfo struct {
	ID    ModuleCategory
	Label string
}

// ModuleCategories lists module categories in display order.
var ModuleCategories = []ModuleCategoryInfo{
	{ModuleSensor, "Sensors"},
	{ModuleActuator, "Actuators"},
	{ModuleCommunication, "Connectivity"},
	{ModuleDisplay, "Display & UI"},
	{ModulePower, "Power & Regulation"},
}
